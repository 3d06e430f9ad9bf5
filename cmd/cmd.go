package cmd

import (
	"fmt"
	goerrors "github.com/go-errors/errors"
	"github.com/pkg/errors"
	"github.com/textclf/spamsvm/artifact"
	"github.com/textclf/spamsvm/config"
	"github.com/textclf/spamsvm/dataset"
	"github.com/textclf/spamsvm/label"
	"os"
)

// Version is reported by every utility.
const Version = "spamsvm 1.0.0"

// Config loads the configuration named by the SPAMSVM_CONFIG environment variable, exiting if it
// cannot be read.
func Config() config.Config {
	c, err := config.FromEnv()
	if err != nil {
		Fatal(err)
	}
	return c
}

// Fatal reports err and exits with a non-zero status. Errors a user can act on are printed as a
// single line; anything else is printed with a stack trace.
func Fatal(err error) {
	var (
		schemaErr  *dataset.SchemaError
		labelErr   *label.LabelError
		missingErr *artifact.ArtifactMissingError
		corruptErr *artifact.ArtifactCorruptError
	)
	switch {
	case errors.As(err, &schemaErr), errors.As(err, &labelErr), errors.As(err, &missingErr), errors.As(err, &corruptErr):
		fmt.Fprintln(os.Stderr, "error:", err)
	default:
		fmt.Fprintln(os.Stderr, goerrors.Wrap(err, 1).ErrorStack())
	}
	os.Exit(1)
}
