package purge

import (
	"errors"
	"fmt"

	"github.com/lakshaymaurya-felt/devsweep/internal/core"
	"github.com/sirupsen/logrus"
)

// ConfirmWord is what the operator must type to apply a purge.
const ConfirmWord = "delete"

var (
	// ErrDeclined is returned when the confirmation word was not typed.
	ErrDeclined = errors.New("purge declined")
	// ErrDeleteFailed is returned when at least one match could not be removed.
	ErrDeleteFailed = errors.New("some matches could not be deleted")
)

// Confirmer asks for a typed confirmation word.
type Confirmer interface {
	ConfirmToken(question, token string) (bool, error)
}

// Purger deletes scanned matches under a validated root.
type Purger struct {
	Root    string
	Deleter core.Deleter
	Confirm Confirmer
}

// Outcome is the per-match result of Apply.
type Outcome struct {
	Deleted []Match
	// Skipped matches no longer resolve inside Root.
	Skipped []Match
	Failed  []Match
}

// FreedKB sums the deleted matches' scanned sizes.
func (o Outcome) FreedKB() int64 {
	return TotalKB(o.Deleted)
}

// Apply asks for the confirmation word and deletes every match still under
// Root. Deletion failures are attempted past and reported together.
func (p *Purger) Apply(matches []Match) (Outcome, error) {
	var out Outcome
	if len(matches) == 0 {
		return out, nil
	}

	verb := "permanently delete"
	if p.Deleter.Reversible() {
		verb = "move to trash"
	}
	question := fmt.Sprintf("This will %s %d directories (%s).", verb, len(matches), core.FormatSize(TotalKB(matches)*1024))
	ok, err := p.Confirm.ConfirmToken(question, ConfirmWord)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrDeclined, err)
	}
	if !ok {
		return out, ErrDeclined
	}

	for _, m := range matches {
		log := logrus.WithField("path", m.Path)
		within, err := core.IsWithin(p.Root, m.Path)
		if err != nil || !within {
			log.Warnf("skipping: no longer inside %s", p.Root)
			out.Skipped = append(out.Skipped, m)
			continue
		}
		if err := p.Deleter.Delete(m.Path); err != nil {
			log.Warnf("%s failed: %v", p.Deleter.Name(), err)
			out.Failed = append(out.Failed, m)
			continue
		}
		log.WithField("bytes", m.KB*1024).Infof("%s done", p.Deleter.Name())
		out.Deleted = append(out.Deleted, m)
	}

	if len(out.Failed) > 0 {
		return out, fmt.Errorf("%w: %d of %d", ErrDeleteFailed, len(out.Failed), len(matches))
	}
	return out, nil
}
