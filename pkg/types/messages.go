package types

// Client -> Server
// add_player:
//   name: string
//
// rebind (after reconnect; the server re-points the player at the new
// socket — the player id is the identifier clients hold):
//   player_id: string
//   old_ref: string // optional fallback when no id is available
//
// get_players: {}
//
// start_game:
//   team_size: number
//
// reset_game: {}
//
// team_snapshot:
//   team_id: string
//
// dot_click:
//   player_id: string
//   team_id: string
//   dot_index: number
//   round: "round1" | "round2" | "round3" | "round4"
//   batch_size: number
//   total_size: number
//
// next_turn:
//   player_id: string
//   team_id: string
//   round: "round1" | "round2" | "round3" | "round4"
//   batch_size: number
//   total_size: number
//
// start_new_round:
//   team_id: string
//   round: string      // the round being left
//   next_round: string // the round being started
//   batch_size: number
//
// fetch_players_time:
//   team_id: string
//   players_time: any // client-measured elapsed times, relayed verbatim

// Server -> Client (all wrapped as { type, data })
// player_joined: player          -> the joining player only
// player_list: { players }       -> whole lobby
// join_room: { team_id, members }-> one team
// game_reset: {}                 -> whole lobby
// team_snapshot: { team_id, members, ledger } -> one team
// dot_clicked_update: { team_id, player_id, round, clicked_dots } -> one team
// enable_next: { is_next_enabled, is_all_clicked } -> acting player only
// next_player_turn: { team_id, round, members, ledger,
//                     round_completed, is_last_player } -> one team
// new_round: { team_id, round, batch_size, members, ledger } -> one team
// start_timer / stop_timer / reset_timer:
//   { team_id } or { player_id } -> one team or one player
// players_time: { team_id, players_time } -> one team
// error: { message }             -> offending sender only
