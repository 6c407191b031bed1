package security

import (
	"fmt"
	"strings"

	"github.com/nbutton23/zxcvbn-go"
)

const maxZxcvbnScore = 4

// StrengthChecker scores candidate passwords with zxcvbn and rejects
// those below a configured minimum score. A minimum score of zero
// disables the check entirely, leaving the character-class policy as the
// only gate.
type StrengthChecker struct {
	minScore int
}

// NewStrengthChecker clamps the score to the zxcvbn range [0,4].
func NewStrengthChecker(minScore int) *StrengthChecker {
	if minScore < 0 {
		minScore = 0
	}
	if minScore > maxZxcvbnScore {
		minScore = maxZxcvbnScore
	}
	return &StrengthChecker{minScore: minScore}
}

// Enabled reports whether the checker will reject anything at all.
func (c *StrengthChecker) Enabled() bool {
	return c.minScore > 0
}

// Check scores the password, feeding user identifiers into the dictionary
// so passwords derived from the user's own email or name score poorly.
// Returns an error describing the weakness when the score falls short.
func (c *StrengthChecker) Check(password string, userInputs ...string) error {
	if !c.Enabled() {
		return nil
	}

	inputs := make([]string, 0, len(userInputs))
	for _, in := range userInputs {
		if trimmed := strings.TrimSpace(in); trimmed != "" {
			inputs = append(inputs, trimmed)
		}
	}

	result := zxcvbn.PasswordStrength(password, inputs)
	if result.Score < c.minScore {
		return fmt.Errorf("password is too weak (score %d of %d required)", result.Score, c.minScore)
	}
	return nil
}
