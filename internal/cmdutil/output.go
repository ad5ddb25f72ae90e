package cmdutil

import (
	"errors"
	"fmt"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	oerrors "github.com/bundlegraph/cli/internal/errors"
	"github.com/bundlegraph/cli/internal/output"
)

// PrintError prints err in a user-friendly format. Aggregates are expanded
// one error per entry; DetailErrors print their structured form.
func PrintError(msg string, err error) {
	var agg utilerrors.Aggregate
	if errors.As(err, &agg) && len(agg.Errors()) > 1 {
		output.Error(fmt.Sprintf("%s (%d errors)", msg, len(agg.Errors())))
		for _, e := range agg.Errors() {
			printOne(e)
		}
		return
	}
	output.Error(msg)
	printOne(err)
}

func printOne(err error) {
	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		output.Details(detail.Error())
		return
	}
	output.Details("  " + err.Error())
}
