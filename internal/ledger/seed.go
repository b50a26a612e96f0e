package ledger

import "time"

// seedAge is how far before now the historical seed entries are stamped.
const seedAge = 3 * time.Hour

// Seed returns the two-player demo dataset with timestamps relative to now.
func Seed(now time.Time) Ledger {
	now = Timestamp(now)
	earlier := now.Add(-seedAge)
	approvedAt := earlier

	return Ledger{
		NextPlayerID:   3,
		NextGameID:     4,
		NextTransferID: 3,
		Players: []Player{
			{
				ID:     1,
				Name:   "Ava Hearts",
				Email:  "ava@example.com",
				Wallet: 250,
				GameAccounts: []GameAccount{
					{ID: 1, Game: "Ultra Panda", Username: "avaQueen", Balance: 120},
					{ID: 2, Game: "Fire Kirin", Username: "avaFlame", Balance: 55},
				},
				Activity: []ActivityEntry{
					{Message: "Transfer of $40 to Fire Kirin completed automatically.", Time: earlier},
					{Message: "Ultra Panda account created automatically as avaQueen.", Time: earlier},
					{Message: "$100 added via tierlock", Time: now},
				},
			},
			{
				ID:     2,
				Name:   "Leo Club",
				Email:  "leo@example.com",
				Wallet: 80,
				GameAccounts: []GameAccount{
					{ID: 3, Game: "Ultra Panda", Username: "lionking", Balance: 0},
				},
				Activity: []ActivityEntry{
					{Message: "$80 added via bitcoin", Time: now},
				},
			},
		},
		Transfers: []Transfer{
			{
				ID:            1,
				PlayerID:      1,
				GameAccountID: 1,
				Amount:        60,
				Status:        TransferApproved,
				RequestedAt:   earlier,
				ApprovedAt:    &approvedAt,
			},
		},
	}
}
