package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/envseal/internal/dotenv"
	"github.com/PolarWolf314/envseal/internal/envelope"
	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	logger "github.com/PolarWolf314/envseal/internal/logging"
	"github.com/PolarWolf314/envseal/internal/transform"
)

// LoadOptions configures the load workflow.
type LoadOptions struct {
	// Dir is the directory to run in. Defaults to the working directory.
	Dir string

	// FilePatterns specifies files to load. Later files override earlier
	// ones. If empty, the configured patterns are used.
	FilePatterns []string

	Passphrase []byte

	Codec *envelope.Codec
	Log   logger.Logger
}

// Load reads .env files and returns their variables with sealed values
// unsealed. Files are never modified. Within a file the last assignment of
// a key wins. Double-quoted values have their escapes interpreted (\n,
// \t, \" and so on); single-quoted and unquoted values are taken literally.
//
// Unlike Reveal, any value that cannot be unsealed fails the whole load:
// a partial environment is worse than none.
func Load(ctx context.Context, opts LoadOptions) (map[string]string, error) {
	if len(opts.Passphrase) == 0 {
		return nil, fmt.Errorf("%w: passphrase must not be empty", kerrors.ErrInvalidInput)
	}

	proj, err := loadProject(opts.Dir)
	if err != nil {
		return nil, err
	}

	envFiles, err := proj.resolveFiles(opts.FilePatterns)
	if err != nil {
		return nil, err
	}

	engine := transform.New(opts.Codec, opts.Log)
	env := make(map[string]string)

	for _, path := range envFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		result, err := engine.Transform(ctx, dotenv.Parse(string(data)), transform.Options{
			Policy:     transform.PolicyReveal,
			Passphrase: opts.Passphrase,
			FailFast:   true,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", proj.rel(path), err)
		}

		for _, line := range result.Document.Lines {
			if line.Kind == dotenv.KindAssignment {
				env[line.Key] = line.Interpreted()
			}
		}
	}

	return env, nil
}
