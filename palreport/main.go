// Command palreport generates a reproducible HTML report demonstrating
// perceptually uniform color palettes over synthetic samples and census
// tract geometry. Figures go to images/, the document to
// output/index.html, both under the current directory.
//
// The command takes no flags and reads no configuration: every
// parameter is a literal constant, so two runs produce the same
// report.
package main

import (
	"log"
	"os"

	"github.com/vizlab/palreport/census"
	"github.com/vizlab/palreport/report"
)

// defaultRequest is the fixed region and variable the published report
// is built from: total population per tract in San Francisco county.
func defaultRequest() census.Request {
	return census.Request{
		Geography:  "tract",
		VariableID: "B01003_001E",
		Year:       2010,
		State:      "06",
		County:     "075",
		TargetCRS:  "EPSG:3857",
	}
}

func main() {
	log.SetPrefix("palreport: ")
	log.SetFlags(0)

	if err := report.Build(".", report.Standard(), &census.Client{}, defaultRequest()); err != nil {
		log.Fatal(err)
	}
	report.Session().Fprint(os.Stdout)
}
