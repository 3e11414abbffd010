package audit

import (
	"fmt"

	"github.com/pkg/errors"
)

// Summary is the aggregate of one audit run
type Summary struct {
	TotalPackages     int
	TotalAttributes   int
	TotalDiffs        int
	PackagesWithDiffs int
	FailedPackages    int
}

// Summarize folds per-package results into aggregate statistics. Failed
// packages are counted separately and don't contribute to the attribute
// and accuracy numbers.
func Summarize(results []Result) (*Summary, error) {
	summary := &Summary{}

	for _, result := range results {
		if result.Err != nil {
			summary.FailedPackages++
			continue
		}

		summary.TotalPackages++
		summary.TotalAttributes += result.Stat.Attributes
		summary.TotalDiffs += result.Stat.Diffs
		if result.Stat.Diffs > 0 {
			summary.PackagesWithDiffs++
		}
	}

	if summary.TotalPackages == 0 {
		return nil, errors.New("no packages were audited")
	}

	return summary, nil
}

// Accuracy is the percentage of packages whose records fully agree
func (s *Summary) Accuracy() float64 {
	return 100 - float64(s.PackagesWithDiffs)/float64(s.TotalPackages)*100
}

// String renders the trailing statistics block of the report
func (s *Summary) String() string {
	result := fmt.Sprintf("Packages audited: %d\n", s.TotalPackages)
	result += fmt.Sprintf("Attributes checked: %d\n", s.TotalAttributes)
	result += fmt.Sprintf("Average attributes per package: %.1f\n",
		float64(s.TotalAttributes)/float64(s.TotalPackages))
	result += fmt.Sprintf("Packages with differences: %d\n", s.PackagesWithDiffs)
	result += fmt.Sprintf("Differences: %d\n", s.TotalDiffs)
	if s.TotalDiffs > 0 {
		result += fmt.Sprintf("Average differences per attribute: %.4f\n",
			float64(s.TotalDiffs)/float64(s.TotalAttributes))
	}
	if s.FailedPackages > 0 {
		result += fmt.Sprintf("Failed packages: %d\n", s.FailedPackages)
	}
	result += fmt.Sprintf("Accuracy: %.2f%%\n", s.Accuracy())

	return result
}
