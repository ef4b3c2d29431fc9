package utils

import (
	"fmt"
	"math/rand"
)

var nicknameAdjectives = []string{
	"Fast", "Smart", "Strong", "Brave", "Wise", "Agile", "Quiet", "Bright",
	"Dark", "Light", "Golden", "Silver", "Red", "Blue", "Green",
	"Violet", "Fiery", "Icy", "Stormy", "Sunny", "Lunar", "Starry",
	"Wild", "Free", "Proud", "Valiant", "Untamed", "Mysterious", "Ancient",
	"Mighty", "Great", "Noble", "Royal", "Imperial", "Legendary",
}

var nicknameNouns = []string{
	"Wolf", "Eagle", "Lion", "Tiger", "Dragon", "Phoenix", "Falcon", "Panther",
	"Bear", "Shark", "Cobra", "Hawk", "Lynx", "Leopard", "Cheetah", "Coyote",
	"Warrior", "Knight", "Mage", "Hunter", "Guardian", "Protector", "Master", "Champion",
	"King", "Emperor", "Prince", "Hero", "Legend", "Titan", "Giant", "Colossus",
	"Storm", "Lightning", "Thunder", "Wind", "Fire", "Ice", "Shadow", "Light",
}

var nicknameNumbers = []string{
	"1", "2", "3", "7", "9", "13", "21", "42", "69", "77", "88", "99", "100", "777", "999",
}

// GenerateNickname produces a random adjective+noun candidate, with a number
// suffix roughly half the time. Uniqueness is the allocator's concern.
func GenerateNickname() string {
	adjective := nicknameAdjectives[rand.Intn(len(nicknameAdjectives))]
	noun := nicknameNouns[rand.Intn(len(nicknameNouns))]

	if rand.Intn(2) == 0 {
		return adjective + noun
	}
	return adjective + noun + nicknameNumbers[rand.Intn(len(nicknameNumbers))]
}

// GenerateNicknameOptions produces count distinct candidates
func GenerateNicknameOptions(count int) []string {
	seen := make(map[string]struct{}, count)
	options := make([]string, 0, count)
	for len(options) < count {
		candidate := GenerateNickname()
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}
		options = append(options, candidate)
	}
	return options
}

// SaltNickname appends a random numeric suffix when the base candidate
// collides too often
func SaltNickname(base string) string {
	return fmt.Sprintf("%s%d", base, rand.Intn(10000))
}
