package audit

import (
	"context"

	"github.com/pkg/errors"

	"github.com/repoaudit-dev/repoaudit/pacman"
)

// Auditor reconciles one repository snapshot against source-derived
// metadata. The snapshot is built once before the workers start and is
// never written afterwards, so it is shared without locking.
type Auditor struct {
	Snapshot map[string]pacman.Attributes
	Source   *SrcinfoSource
}

// AuditPackage performs the full per-package cycle: invoke the source
// metadata command, extract the merged record for name and reconcile it
// against the repository record
func (a *Auditor) AuditPackage(ctx context.Context, name string) (Stat, pacman.FieldDiffs, error) {
	record, ok := a.Snapshot[name]
	if !ok {
		return Stat{}, nil, errors.Errorf("package %s is not present in the database", name)
	}

	si, err := a.Source.ReadSrcinfo(ctx, name)
	if err != nil {
		return Stat{}, nil, err
	}

	attributes, err := pacman.SrcinfoAttributes(si, name)
	if err != nil {
		return Stat{}, nil, err
	}

	diffs, count := pacman.Reconcile(record, attributes, name)

	return Stat{Diffs: count, Attributes: len(record)}, diffs, nil
}
