package utils

import (
	"fmt"
	"math/rand"
	"time"
)

var (
	adjectives = []string{
		"hollow", "crooked", "pale", "silent", "rotten", "drowned", "hungry", "patient", "faceless", "weeping",
		"withered", "starving", "nameless", "cold", "blind", "tall", "smiling", "broken", "ashen", "restless",
	}

	nouns = []string{
		"pines", "thing", "shape", "mother", "choir", "wind", "lantern", "deer", "stranger", "well",
		"orchard", "shepherd", "bride", "hunter", "chapel", "moon", "crow", "child", "path", "fog",
	}

	verbs = []string{
		"is counting your steps",
		"remembers your name",
		"has stopped breathing",
		"knows where you hid",
		"is closer than it looks",
		"will not follow the path",
		"wants the lost things back",
		"hums beneath the needles",
		"waits past the willows",
		"only moves when you look away",
	}
)

// GenerateOmen creates a line in the format "The <adjective> <noun> <verb phrase>."
func GenerateOmen(r *rand.Rand) string {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	adj := adjectives[r.Intn(len(adjectives))]
	noun := nouns[r.Intn(len(nouns))]
	verb := verbs[r.Intn(len(verbs))]

	return fmt.Sprintf("The %s %s %s.", adj, noun, verb)
}
