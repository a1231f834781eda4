package roster

import (
	"fmt"
	"time"
)

// Roster is one user's pick set for one game week. Membership has set
// semantics; captain and vice captain must be members when set.
type Roster struct {
	ID            string
	UserID        string
	GameWeekID    int
	PlayerIDs     []string
	CaptainID     string
	ViceCaptainID string
	Points        int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r Roster) Contains(playerID string) bool {
	for _, id := range r.PlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

func (r Roster) ValidateBasic() error {
	if r.ID == "" {
		return fmt.Errorf("roster id is required")
	}
	if r.UserID == "" {
		return fmt.Errorf("roster user id is required")
	}
	if r.GameWeekID <= 0 {
		return fmt.Errorf("roster game week id must be greater than zero")
	}

	seen := make(map[string]struct{}, len(r.PlayerIDs))
	for _, id := range r.PlayerIDs {
		if id == "" {
			return fmt.Errorf("roster contains an empty player id")
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("roster contains duplicate player id %s", id)
		}
		seen[id] = struct{}{}
	}

	if r.CaptainID != "" {
		if _, ok := seen[r.CaptainID]; !ok {
			return fmt.Errorf("captain %s is not a roster member", r.CaptainID)
		}
	}
	if r.ViceCaptainID != "" {
		if _, ok := seen[r.ViceCaptainID]; !ok {
			return fmt.Errorf("vice captain %s is not a roster member", r.ViceCaptainID)
		}
	}

	return nil
}

// Clone returns a deep copy safe to mutate independently.
func (r Roster) Clone() Roster {
	copied := r
	copied.PlayerIDs = append([]string(nil), r.PlayerIDs...)
	return copied
}
