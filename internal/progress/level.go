package progress

import "math"

// ExperienceForLevel returns the experience threshold that completes level:
// floor(100 * 1.2^(level-1)). Levels below 1 are treated as 1.
func ExperienceForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	// The epsilon keeps exact products such as 144 from flooring to 143.
	return int(math.Floor(100*math.Pow(1.2, float64(level-1)) + 1e-9))
}

// AddExperience adds xp and levels up until experience is back below the
// next threshold. It returns the number of levels gained.
func (t *Tracker) AddExperience(xp int) int {
	if xp > 0 {
		t.Experience += xp
	}
	return t.levelUp()
}

func (t *Tracker) levelUp() int {
	if t.Level < 1 {
		t.Level = 1
	}
	t.ExperienceToNext = ExperienceForLevel(t.Level)

	gained := 0
	for t.Experience >= t.ExperienceToNext {
		t.Level++
		t.ExperienceToNext = ExperienceForLevel(t.Level)
		gained++
	}
	return gained
}
