package game

import (
	"errors"
	"fmt"
)

var ErrPlayerNotFound = errors.New("player not found")
var ErrTeamNotFound = errors.New("team not found")
var ErrRecordNotFound = errors.New("click record not found")
var ErrUnknownRound = errors.New("unknown round")
var ErrUnsupportedCommand = errors.New("unsupported command")

func wrapID(err error, id string) error { return fmt.Errorf("%w: %q", err, id) }
