// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"fmt"

	"github.com/katalvlaran/voxharm/harmonics"
)

func buildComplexCache(ctx context.Context, cfg harmonics.Config, fam harmonics.Family) (*harmonics.Cache[complex128], error) {
	switch fam {
	case harmonics.Scalar:
		return harmonics.BuildScalarCache(ctx, cfg)
	case harmonics.Radial:
		return harmonics.BuildRadialCache(ctx, cfg)
	}

	return nil, fmt.Errorf("%v is not a scalar family: %w", fam, harmonics.ErrFamilyMismatch)
}

func buildVectorCache(ctx context.Context, cfg harmonics.Config, fam harmonics.Family) (*harmonics.Cache[[3]complex128], error) {
	switch fam {
	case harmonics.Vector:
		return harmonics.BuildVectorCache(ctx, cfg)
	case harmonics.VectorRadial:
		return harmonics.BuildVectorRadialCache(ctx, cfg)
	}

	return nil, fmt.Errorf("%v is not a vector family: %w", fam, harmonics.ErrFamilyMismatch)
}
