package progress

import "time"

// LiveCapacity is the number of live achievements kept for display.
const LiveCapacity = 3

// LiveAchievement is a short-lived in-game notification.
type LiveAchievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Progress    int       `json:"progress"`
	Target      int       `json:"target"`
	Timestamp   time.Time `json:"timestamp"`
}

// Notifier is a rolling buffer of the most recent live achievements.
// Its methods never modify a buffer shared with another Notifier.
type Notifier struct {
	items []LiveAchievement
}

// Push returns a notifier holding the newest LiveCapacity-1 existing
// entries followed by a.
func (n Notifier) Push(a LiveAchievement) Notifier {
	keep := n.items
	if len(keep) > LiveCapacity-1 {
		keep = keep[len(keep)-(LiveCapacity-1):]
	}
	items := make([]LiveAchievement, 0, len(keep)+1)
	items = append(items, keep...)
	items = append(items, a)
	return Notifier{items: items}
}

// Items returns a copy of the buffer, oldest first.
func (n Notifier) Items() []LiveAchievement {
	if len(n.items) == 0 {
		return nil
	}
	out := make([]LiveAchievement, len(n.items))
	copy(out, n.items)
	return out
}

// Visible returns the entries created within window of now, oldest first.
func (n Notifier) Visible(now time.Time, window time.Duration) []LiveAchievement {
	var out []LiveAchievement
	for _, a := range n.items {
		if now.Sub(a.Timestamp) < window {
			out = append(out, a)
		}
	}
	return out
}

// Len returns the number of buffered entries.
func (n Notifier) Len() int {
	return len(n.items)
}

// milestone is a streak or combo count that produces a live achievement.
type milestone struct {
	count       int
	title       string
	description string
}

var comboMilestones = []milestone{
	{5, "Perfect Flight!", "5 obstacles cleared perfectly"},
	{10, "Flight Master!", "10 perfect flights in a row"},
}

var streakMilestones = []milestone{
	{5, "Coin Streak!", "5 coins in a row"},
	{10, "Coin Master!", "10 coins in a row"},
	{20, "Golden Touch!", "20 coins in a row"},
}

func reached(ms []milestone, count int) (milestone, bool) {
	for _, m := range ms {
		if m.count == count {
			return m, true
		}
	}
	return milestone{}, false
}
