package kinematics

import (
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/armlab/kinarm/spatialmath"
	"github.com/armlab/kinarm/utils"
)

// IKConfig holds the tunable parameters of the damped least-squares solver.
// A config is immutable and may be shared across any number of solves.
type IKConfig struct {
	// Damping is the regularization factor lambda. It keeps the iteration
	// matrix positive-definite even at kinematic singularities; larger
	// values are more stable but take smaller steps.
	Damping float64
	// MaxIterations bounds the solve, making worst-case latency fixed.
	MaxIterations int
	// PositionWeight scales the x, y, z error components.
	PositionWeight float64
	// OrientationWeight scales the pitch and roll error components.
	OrientationWeight float64
	// Tolerance is the weighted error norm below which the solve converges.
	Tolerance float64
	// StepScale scales each update step, in (0, 1].
	StepScale float64
}

// DefaultIKConfig returns solver parameters suitable for the 5-DOF arms this
// module ships chains for.
func DefaultIKConfig() IKConfig {
	return IKConfig{
		Damping:           0.05,
		MaxIterations:     100,
		PositionWeight:    1.0,
		OrientationWeight: 0.1,
		Tolerance:         1e-4,
		StepScale:         1.0,
	}
}

// Validate reports every parameter violation at once.
func (c IKConfig) Validate() error {
	var err error
	if c.Damping <= 0 {
		err = multierr.Append(err, errors.Errorf("damping must be positive, got %f", c.Damping))
	}
	if c.MaxIterations <= 0 {
		err = multierr.Append(err, errors.Errorf("max iterations must be positive, got %d", c.MaxIterations))
	}
	if c.PositionWeight < 0 {
		err = multierr.Append(err, errors.Errorf("position weight must be non-negative, got %f", c.PositionWeight))
	}
	if c.OrientationWeight < 0 {
		err = multierr.Append(err, errors.Errorf("orientation weight must be non-negative, got %f", c.OrientationWeight))
	}
	if c.Tolerance <= 0 {
		err = multierr.Append(err, errors.Errorf("tolerance must be positive, got %f", c.Tolerance))
	}
	if c.StepScale <= 0 || c.StepScale > 1 {
		err = multierr.Append(err, errors.Errorf("step scale must be in (0, 1], got %f", c.StepScale))
	}
	return err
}

// IKResult reports the outcome of one solve. Non-convergence is a normal
// result, not an error: JointAngles then holds the best configuration found,
// always within joint limits.
type IKResult struct {
	Success          bool
	JointAngles      []float64
	Iterations       int
	PositionError    float64
	OrientationError float64
	Converged        bool
}

// IKSolver iterates joint angles toward a target end-effector pose using
// damped least squares (Levenberg-Marquardt style):
//
//	dq = Jw^T (Jw Jw^T + lambda^2 I)^-1 ew
//
// with Jw and ew the row/component weighted Jacobian and task-space error.
// The damped 5x5 system is symmetric positive-definite, so it is solved by
// Cholesky factorization with no singularity special-casing. A solver is
// stateless across calls and safe for concurrent use.
type IKSolver struct {
	chain  *KinematicChain
	cfg    IKConfig
	logger golog.Logger
}

// NewIKSolver returns a solver over the given chain, or an error if the
// config is invalid.
func NewIKSolver(chain *KinematicChain, cfg IKConfig, logger golog.Logger) (*IKSolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = golog.Global()
	}
	return &IKSolver{chain: chain, cfg: cfg, logger: logger}, nil
}

// Config returns the solver's configuration.
func (s *IKSolver) Config() IKConfig {
	return s.cfg
}

// Solve iterates from the seed joint angles toward the target pose. It
// returns an error only when the seed length does not match the chain; an
// unreachable target degrades to IKResult{Success: false} with the closest
// configuration found. The call is deterministic and performs at most
// MaxIterations update steps.
func (s *IKSolver) Solve(target spatialmath.EEPose, seed []float64) (IKResult, error) {
	if err := s.chain.checkJointCount(seed); err != nil {
		return IKResult{}, err
	}
	cfg := s.cfg
	n := s.chain.NJoints()
	targetArr := target.ToArray()
	weights := []float64{
		cfg.PositionWeight, cfg.PositionWeight, cfg.PositionWeight,
		cfg.OrientationWeight, cfg.OrientationWeight,
	}

	q := s.chain.clamp(append([]float64(nil), seed...))
	best := append([]float64(nil), q...)
	bestNorm := -1.0
	var bestPosErr, bestOriErr float64

	errVec := make([]float64, 5)
	weighted := mat.NewVecDense(5, nil)
	iterations := 0

	for {
		pose, err := s.chain.EndEffectorPose(q)
		if err != nil {
			return IKResult{}, err
		}
		poseArr := pose.ToArray()
		for k := range errVec {
			errVec[k] = targetArr[k] - poseArr[k]
			if k >= 3 {
				errVec[k] = utils.WrapAngle(errVec[k])
			}
			weighted.SetVec(k, weights[k]*errVec[k])
		}
		posErr := floats.Norm(errVec[:3], 2)
		oriErr := floats.Norm(errVec[3:], 2)
		weightedNorm := mat.Norm(weighted, 2)

		if bestNorm < 0 || weightedNorm < bestNorm {
			bestNorm = weightedNorm
			copy(best, q)
			bestPosErr, bestOriErr = posErr, oriErr
		}

		if weightedNorm < cfg.Tolerance {
			return IKResult{
				Success:          true,
				JointAngles:      append([]float64(nil), q...),
				Iterations:       iterations,
				PositionError:    posErr,
				OrientationError: oriErr,
				Converged:        true,
			}, nil
		}
		if iterations >= cfg.MaxIterations {
			s.logger.Debugw(
				"inverse kinematics did not converge",
				"iterations", iterations,
				"position_error", bestPosErr,
				"orientation_error", bestOriErr,
			)
			return IKResult{
				Success:          false,
				JointAngles:      append([]float64(nil), best...),
				Iterations:       iterations,
				PositionError:    bestPosErr,
				OrientationError: bestOriErr,
				Converged:        false,
			}, nil
		}

		jac, err := s.chain.Jacobian(q)
		if err != nil {
			return IKResult{}, err
		}
		jacW := mat.NewDense(5, n, nil)
		for r := 0; r < 5; r++ {
			for col := 0; col < n; col++ {
				jacW.Set(r, col, weights[r]*jac.At(r, col))
			}
		}

		// A = Jw Jw^T + lambda^2 I, symmetric positive-definite.
		var jjt mat.Dense
		jjt.Mul(jacW, jacW.T())
		damped := mat.NewSymDense(5, nil)
		for r := 0; r < 5; r++ {
			for col := r; col < 5; col++ {
				v := jjt.At(r, col)
				if r == col {
					v += cfg.Damping * cfg.Damping
				}
				damped.SetSym(r, col, v)
			}
		}

		var chol mat.Cholesky
		if !chol.Factorize(damped) {
			// Unreachable for positive damping; bail out with the best
			// configuration rather than failing mid-iteration.
			s.logger.Warnw("damped system factorization failed", "damping", cfg.Damping)
			return IKResult{
				Success:          false,
				JointAngles:      append([]float64(nil), best...),
				Iterations:       iterations,
				PositionError:    bestPosErr,
				OrientationError: bestOriErr,
				Converged:        false,
			}, nil
		}
		y := mat.NewVecDense(5, nil)
		if err := chol.SolveVecTo(y, weighted); err != nil {
			return IKResult{}, errors.Wrap(err, "solving damped least-squares system")
		}

		var dq mat.VecDense
		dq.MulVec(jacW.T(), y)
		for i := range q {
			q[i] += cfg.StepScale * dq.AtVec(i)
		}
		q = s.chain.clamp(q)
		iterations++
	}
}
