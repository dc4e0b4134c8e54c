package roster

import "math/rand"

// Villager is a fixed member of the village cast. Personality intensities
// run 1-5 and are immutable once a session starts.
type Villager struct {
	Name        string         `json:"name"`
	Title       string         `json:"title"`
	Location    string         `json:"location"`
	Backstory   string         `json:"backstory"`
	Personality map[string]int `json:"personality_traits"`
}

// Sample returns a session-scoped subset of the global roster, at most n
// villagers in random order. The returned slice is freshly allocated; the
// global roster is never reordered.
func Sample(n int, rng *rand.Rand) []Villager {
	if n > len(Villagers) {
		n = len(Villagers)
	}
	idx := rng.Perm(len(Villagers))
	out := make([]Villager, 0, n)
	for _, i := range idx[:n] {
		out = append(out, Villagers[i])
	}
	return out
}

// Villagers is the global cast. Each game samples a subset.
var Villagers = []Villager{
	{
		Name:      "Arthur the Woodcutter",
		Title:     "A kind-faced old man in a cottage",
		Location:  "Woodcutter's Cottage",
		Backstory: "Arthur is the heart of the village, its unofficial caretaker. It was he who found you by the car wreck and brought you to safety. He is genuinely kind, but his love for the village and its traditions makes him hesitant to speak of the darker secrets beneath the surface.",
		Personality: map[string]int{
			"truthfulness": 4, "verbosity": 3, "sarcasm": 1, "fearfulness": 3,
			"mystery": 3, "humor": 2, "helpfulness": 5,
		},
	},
	{
		Name:      "Old Mara",
		Title:     "A gruff woman by the river",
		Location:  "Foggy Riverbed",
		Backstory: "Mara lost her son in a great flood years ago, and grief has hardened her into a cynical, sarcastic shell. Her sharp wit hides deep knowledge of the village's natural dangers and forgotten history. She respects persistence but has no time for fools.",
		Personality: map[string]int{
			"truthfulness": 3, "verbosity": 2, "sarcasm": 5, "fearfulness": 2,
			"mystery": 3, "humor": 3, "helpfulness": 2,
		},
	},
	{
		Name:      "Father Elias",
		Title:     "A robed figure in the temple ruins",
		Location:  "Abandoned Temple",
		Backstory: "A man of fanatical faith, defrocked for practicing unsanctioned rituals. He sees the village's isolation as a holy trial and speaks in cryptic parables, believing direct answers are a form of blasphemy. He guards a dark secret about the village's founding.",
		Personality: map[string]int{
			"truthfulness": 2, "verbosity": 4, "sarcasm": 1, "fearfulness": 3,
			"mystery": 5, "humor": 1, "helpfulness": 1,
		},
	},
	{
		Name:      "Jacob the Gravedigger",
		Title:     "A man leaning on a shovel in the cemetery",
		Location:  "Cemetery",
		Backstory: "A plague swept the village decades ago and Jacob buried nearly everyone he knew. He copes with alcohol and gallows humor. In rare sober moments his mind is terrifyingly sharp, but he often confuses the living with the dead, wrapping clues in morbid jokes.",
		Personality: map[string]int{
			"truthfulness": 4, "verbosity": 3, "sarcasm": 4, "fearfulness": 4,
			"mystery": 2, "humor": 4, "helpfulness": 3,
		},
	},
	{
		Name:      "Ms. Caelia",
		Title:     "A stern woman in the old schoolhouse",
		Location:  "Old Schoolhouse",
		Backstory: "The former schoolteacher believes in order, discipline, and earned knowledge. She treats the player as an unruly student and demands they prove themselves worthy of information. Her mind is a library of village history behind a stern gate.",
		Personality: map[string]int{
			"truthfulness": 5, "verbosity": 3, "sarcasm": 3, "fearfulness": 1,
			"mystery": 3, "humor": 2, "helpfulness": 2,
		},
	},
	{
		Name:      "Elric the Tailor",
		Title:     "A nervous-looking man in a tailor's shop",
		Location:  "Tailor's Shop",
		Backstory: "Timid and soft-spoken, Elric is the village's eyes and ears. From his shop window he sees all comings and goings. He is terrified of conflict and will lie or feign ignorance when threatened, but his conscience gnaws at him, and he helps in frantic whispered bursts.",
		Personality: map[string]int{
			"truthfulness": 2, "verbosity": 2, "sarcasm": 1, "fearfulness": 5,
			"mystery": 2, "humor": 1, "helpfulness": 4,
		},
	},
	{
		Name:      "Silas the Hunter",
		Title:     "A rugged man outside a remote cabin",
		Location:  "Hunter's Cabin",
		Backstory: "Silas turned his back on the village long ago, preferring the solitude of the forest. A survivalist who speaks in short, practical terms, he knows the hidden paths and natural secrets of the land, but shares them only with those he judges worthy of surviving the woods.",
		Personality: map[string]int{
			"truthfulness": 4, "verbosity": 1, "sarcasm": 3, "fearfulness": 1,
			"mystery": 4, "humor": 1, "helpfulness": 3,
		},
	},
	{
		Name:      "Dr. Alistair Finch",
		Title:     "An elderly doctor in the village square",
		Location:  "Village Square",
		Backstory: "The village doctor is a man of science whose aged mind has become a cluttered attic of facts. He keeps meticulous records but can rarely find the one he needs, burying crucial details in long tangential stories about past patients.",
		Personality: map[string]int{
			"truthfulness": 5, "verbosity": 5, "sarcasm": 1, "fearfulness": 3,
			"mystery": 1, "humor": 3, "helpfulness": 4,
		},
	},
	{
		Name:      "Genevieve the Innkeeper",
		Title:     "A cheerful woman polishing a glass",
		Location:  "The Weary Traveler Inn",
		Backstory: "Genevieve runs the only inn, a hub of gossip and quiet deals. She hears everything and volunteers nothing, trading information like currency behind a warm professional cheer. Her helpfulness is proportional to what she thinks she can get in return.",
		Personality: map[string]int{
			"truthfulness": 3, "verbosity": 4, "sarcasm": 2, "fearfulness": 2,
			"mystery": 4, "humor": 4, "helpfulness": 3,
		},
	},
	{
		Name:      "Little Nia",
		Title:     "A small, quiet child",
		Location:  "Anywhere",
		Backstory: "Nia is not like the others. She appears and vanishes without a sound, humming by the lake or drawing strange symbols in the dirt. Ghost, hallucination, or something else, she never speaks directly, communicating only in riddles and cryptic pictures.",
		Personality: map[string]int{
			"truthfulness": 3, "verbosity": 1, "sarcasm": 1, "fearfulness": 2,
			"mystery": 5, "humor": 1, "helpfulness": 2,
		},
	},
}
