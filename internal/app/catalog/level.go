package catalog

// MaxLevel is the level cap.
const MaxLevel = 50

// levelThresholds[i] is the cumulative XP required to reach level i+1.
// Fixed step curve: each level costs 50 XP more than the previous one
// (100, 150, 200, ...). The table is the contract — the same XP always
// yields the same level.
var levelThresholds = buildLevelThresholds()

func buildLevelThresholds() [MaxLevel]int {
	var t [MaxLevel]int
	step := 100
	for i := 1; i < MaxLevel; i++ {
		t[i] = t[i-1] + step
		step += 50
	}
	return t
}

// XPForLevel returns the cumulative XP required to reach a level.
// Levels at or below 1 require 0 XP; levels above the cap are clamped.
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return levelThresholds[level-1]
}

// LevelForXP returns the level for a cumulative XP amount, in [1,50].
// The mapping is monotonic: more XP never yields a lower level.
func LevelForXP(xp int) int {
	if xp < 0 {
		return 1
	}
	level := 1
	for level < MaxLevel && xp >= levelThresholds[level] {
		level++
	}
	return level
}
