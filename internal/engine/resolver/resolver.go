// Package resolver pins every manifest requirement to one exact version by
// consulting the package index.
package resolver

import (
	"context"
	"errors"
	"runtime"
	"sort"

	"github.com/mrmachine/reqs/internal/core/domain"
	"github.com/mrmachine/reqs/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Resolver selects the highest version matching each requirement's
// specifiers. Source entries are carried through verbatim.
type Resolver struct {
	index     ports.PackageIndex
	telemetry ports.Telemetry
	logger    ports.Logger

	parallelism      int
	allowPreReleases bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithParallelism bounds concurrent index lookups. Zero means NumCPU.
func WithParallelism(n int) Option {
	return func(r *Resolver) {
		r.parallelism = n
	}
}

// WithPreReleases lets resolution pick pre-release versions even when a
// final release matches.
func WithPreReleases(allow bool) Option {
	return func(r *Resolver) {
		r.allowPreReleases = allow
	}
}

// NewResolver creates a Resolver backed by the given index.
func NewResolver(index ports.PackageIndex, telemetry ports.Telemetry, logger ports.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		index:     index,
		telemetry: telemetry,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.parallelism <= 0 {
		r.parallelism = runtime.NumCPU()
	}
	return r
}

// Resolve pins all requirements of the manifest, preserving declaration
// order. Failures are aggregated so one run reports every unresolvable
// requirement.
func (r *Resolver) Resolve(ctx context.Context, manifest *domain.Manifest) ([]domain.Pinned, error) {
	pinned := make([]domain.Pinned, len(manifest.Requirements))
	errs := make([]error, len(manifest.Requirements))

	var group errgroup.Group
	group.SetLimit(r.parallelism)

	for i := range manifest.Requirements {
		req := &manifest.Requirements[i]

		if !req.Source.IsZero() {
			pinned[i] = domain.Pinned{
				Name:     req.Name().String(),
				Source:   req.Source.String(),
				Editable: req.Source.Editable,
			}
			continue
		}

		group.Go(func() error {
			pinned[i], errs[i] = r.resolveOne(ctx, req)
			return nil
		})
	}

	_ = group.Wait()

	if err := joinErrors(errs); err != nil {
		return nil, err
	}
	return pinned, nil
}

func (r *Resolver) resolveOne(ctx context.Context, req *domain.Requirement) (domain.Pinned, error) {
	ctx, vertex := r.telemetry.Record(ctx, "resolve "+req.RawName)

	version, err := r.selectVersion(ctx, req)
	vertex.Complete(err)
	if err != nil {
		return domain.Pinned{}, err
	}

	if r.logger != nil {
		r.logger.Info("pinned requirement", "package", req.RawName, "version", version)
	}
	return domain.Pinned{
		Name:    req.Name().String(),
		Version: version,
	}, nil
}

func (r *Resolver) selectVersion(ctx context.Context, req *domain.Requirement) (string, error) {
	record, err := r.index.Project(ctx, req.Name())
	if err != nil {
		return "", zerr.With(err, "package", req.RawName)
	}

	candidates := parseVersions(record.Versions, r.logger, req.RawName)

	var finals, pres []domain.Version
	for _, v := range candidates {
		if !req.Specifiers.Match(v) {
			continue
		}
		if v.IsPreRelease() {
			pres = append(pres, v)
		} else {
			finals = append(finals, v)
		}
	}

	pick := finals
	if len(pick) == 0 || r.allowPreReleases {
		pick = append(pick, pres...)
	}
	if len(pick) == 0 {
		return "", zerr.With(zerr.With(
			domain.ErrNoMatchingVersion,
			"package", req.RawName),
			"constraint", req.Specifiers.String())
	}

	sort.Slice(pick, func(i, j int) bool { return pick[i].Compare(pick[j]) < 0 })
	return pick[len(pick)-1].String(), nil
}

func parseVersions(raw []string, logger ports.Logger, pkg string) []domain.Version {
	out := make([]domain.Version, 0, len(raw))
	for _, s := range raw {
		v, err := domain.ParseVersion(s)
		if err != nil {
			if logger != nil {
				logger.Warn("skipping unparseable version", "package", pkg, "version", s)
			}
			continue
		}
		out = append(out, v)
	}
	return out
}

// joinErrors aggregates per-requirement failures into one error value.
func joinErrors(errs []error) error {
	var joined error
	for _, err := range errs {
		if err != nil {
			joined = errors.Join(joined, err)
		}
	}
	return joined
}
