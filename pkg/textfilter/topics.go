package textfilter

import "regexp"

// TopicCounter counts how often named topics are mentioned across a set of
// utterances. The turn controller feeds the counts to the oracle as plain
// data so NPCs can react to the player pressing the same subject repeatedly.
type TopicCounter struct {
	topics map[string]*regexp.Regexp
}

// DefaultTopics are the topics tracked when none are configured.
var DefaultTopics = map[string]string{
	"friends": `friend`,
}

// NewTopicCounter compiles one case-insensitive pattern per topic.
// Patterns are matched on word stems, not whole words, so "friends" and
// "friend's" both count toward "friend".
func NewTopicCounter(topics map[string]string) *TopicCounter {
	tc := &TopicCounter{topics: make(map[string]*regexp.Regexp, len(topics))}
	for name, pattern := range topics {
		tc.topics[name] = regexp.MustCompile(`(?i)` + pattern)
	}
	return tc
}

// Count returns per-topic mention counts over the given utterances.
// An utterance mentioning a topic any number of times counts once.
func (tc *TopicCounter) Count(utterances []string) map[string]int {
	counts := make(map[string]int, len(tc.topics))
	for name := range tc.topics {
		counts[name] = 0
	}
	for _, u := range utterances {
		for name, re := range tc.topics {
			if re.MatchString(u) {
				counts[name]++
			}
		}
	}
	return counts
}
