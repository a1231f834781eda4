package memory

import (
	"github.com/riskibarqy/liga-fantasy/internal/domain/player"
	"github.com/riskibarqy/liga-fantasy/internal/domain/user"
)

const (
	SeedAdminUserID = "usr-admin-01"
	SeedDevUserID   = "usr-dev-01"
)

func SeedUsers() []user.User {
	return []user.User{
		{
			ID:       SeedAdminUserID,
			Email:    "admin@liga-fantasy.local",
			TeamName: "Liga Ops",
			Balance:  user.InitialBalance,
			Role:     user.RoleAdmin,
		},
		{
			ID:       SeedDevUserID,
			Email:    "dev@liga-fantasy.local",
			TeamName: "Garuda XI",
			Balance:  user.InitialBalance,
			Role:     user.RoleUser,
		},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "plr-fb-01", Name: "Andritany Ardhiyasa", RealTeam: "Persija Jakarta", Sport: player.SportFootball, Price: 9_000_000},
		{ID: "plr-fb-02", Name: "Hansamu Yama", RealTeam: "Persija Jakarta", Sport: player.SportFootball, Price: 8_800_000},
		{ID: "plr-fb-03", Name: "Gustavo Almeida", RealTeam: "Persija Jakarta", Sport: player.SportFootball, Price: 10_500_000},
		{ID: "plr-fb-04", Name: "Marc Klok", RealTeam: "Persib Bandung", Sport: player.SportFootball, Price: 9_900_000},
		{ID: "plr-fb-05", Name: "Nick Kuipers", RealTeam: "Persib Bandung", Sport: player.SportFootball, Price: 9_200_000},
		{ID: "plr-fb-06", Name: "David da Silva", RealTeam: "Persib Bandung", Sport: player.SportFootball, Price: 10_800_000},
		{ID: "plr-fb-07", Name: "Bruno Moreira", RealTeam: "Persebaya Surabaya", Sport: player.SportFootball, Price: 9_500_000},
		{ID: "plr-fb-08", Name: "Paulo Henrique", RealTeam: "Persebaya Surabaya", Sport: player.SportFootball, Price: 10_000_000},
		{ID: "plr-fb-09", Name: "Eber Bessa", RealTeam: "Bali United", Sport: player.SportFootball, Price: 9_700_000},
		{ID: "plr-fb-10", Name: "Ricky Fajrin", RealTeam: "Bali United", Sport: player.SportFootball, Price: 8_000_000},
		{ID: "plr-fb-11", Name: "Mitsuru Maruoka", RealTeam: "Bali United", Sport: player.SportFootball, Price: 9_000_000},
		{ID: "plr-fb-12", Name: "Privat Mbarga", RealTeam: "Bali United", Sport: player.SportFootball, Price: 10_200_000},
		{ID: "plr-fb-14", Name: "Dedi Kusnandar", RealTeam: "PSM Makassar", Sport: player.SportFootball, Price: 7_800_000},
		{ID: "plr-fb-13", Name: "Yakob Sayuri", RealTeam: "PSM Makassar", Sport: player.SportFootball, Price: 8_600_000},
		{ID: "plr-fs-01", Name: "Evan Soumilena", RealTeam: "Black Steel Papua", Sport: player.SportFutsal, Price: 8_400_000},
		{ID: "plr-fs-02", Name: "Ardiansyah Runtuboy", RealTeam: "Black Steel Papua", Sport: player.SportFutsal, Price: 9_300_000},
		{ID: "plr-fs-03", Name: "Syauqi Saud", RealTeam: "Bintang Timur Surabaya", Sport: player.SportFutsal, Price: 9_100_000},
		{ID: "plr-fs-04", Name: "Firman Adriansyah", RealTeam: "Bintang Timur Surabaya", Sport: player.SportFutsal, Price: 8_700_000},
		{ID: "plr-fs-05", Name: "Rio Pangestu", RealTeam: "Cosmo JNE", Sport: player.SportFutsal, Price: 7_900_000},
		{ID: "plr-fs-06", Name: "Samuel Eko", RealTeam: "Cosmo JNE", Sport: player.SportFutsal, Price: 8_200_000},
	}
}
