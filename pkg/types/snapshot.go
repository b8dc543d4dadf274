package types

// player (as carried by player_joined, player_list, join_room members,
// next_player_turn members):
//   id: string
//   name: string
//   team_id: string // empty until team assignment
//   is_current_player: boolean
//   start_index: number // lower bound of the player's click window
//   end_index: number   // upper bound of the player's click window
//   total_dots_clicked: number // committed clicks in the active round
//   timer_active: boolean
//
// ledger (team_snapshot): { [playerId]: { [round]: number[] } }
// ledger (next_player_turn, new_round): { [playerId]: number[] } // one round
