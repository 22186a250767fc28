package pipeline

import (
	"context"

	"github.com/matzehuels/genogram/pkg/family"
	pkgio "github.com/matzehuels/genogram/pkg/io"
)

// Parse decodes raw family JSON in either vocabulary, repairing it when
// needed.
func (r *Runner) Parse(_ context.Context, data []byte) (family.Family, error) {
	logger := r.logger(Options{})
	f, repaired, err := pkgio.DecodeFamilyRepaired(data)
	if err != nil {
		return family.Family{}, err
	}
	if repaired {
		logger.Warn("input JSON was malformed and has been repaired")
	}
	logger.Debug("decoded family", "persons", len(f.Persons), "relationships", len(f.Relationships))
	return f, nil
}
