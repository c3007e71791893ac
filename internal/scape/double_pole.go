package scape

import (
	"fmt"
	"math"
	"strings"

	"phenome/internal/io"
)

// DoublePoleBalance is the harder variant of pole balancing: two poles of
// different lengths are hinged to the same cart, and a single force input
// must keep both upright while keeping the cart on the track.
type DoublePoleBalance struct {
	MaxSteps    int
	GoalSteps   int
	AngleLimit  float64
	InitAngle1  float64
	InitAngle2  float64
	Damping     bool
}

// NewDoublePoleBalance returns the task configured with the reference
// defaults: a 36-degree angle limit, pole 1 starting tipped 3.6 degrees,
// pole 2 starting upright, and damping-weighted step fitness enabled.
func NewDoublePoleBalance() DoublePoleBalance {
	rad := 2 * math.Pi / 360
	return DoublePoleBalance{
		MaxSteps:   100000,
		GoalSteps:  100000,
		AngleLimit: 36.0 * rad,
		InitAngle1: 3.6 * rad,
		InitAngle2: 0,
		Damping:    true,
	}
}

func (DoublePoleBalance) Name() string { return "double-pole-balance" }

// ForMode returns t reconfigured for a named evaluation mode: "gt" is the
// long training run with pole 1 tipped 3.6 degrees; "validation" and
// "test" cut the episode down to 1200 steps and start with both poles
// tipped, at a different angle pair per mode, to probe generalization.
// "benchmark" shares the "test" start state.
func (t DoublePoleBalance) ForMode(mode string) (DoublePoleBalance, error) {
	rad := 2 * math.Pi / 360
	out := t
	switch strings.TrimSpace(strings.ToLower(mode)) {
	case "", "gt":
		out.MaxSteps = 100000
		out.GoalSteps = 100000
		out.InitAngle1 = 3.6 * rad
		out.InitAngle2 = 0
	case "validation":
		out.MaxSteps = 1200
		out.GoalSteps = 1200
		out.InitAngle1 = 2.4 * rad
		out.InitAngle2 = 1.2 * rad
	case "test", "benchmark":
		out.MaxSteps = 1200
		out.GoalSteps = 1200
		out.InitAngle1 = 4.8 * rad
		out.InitAngle2 = -1.8 * rad
	default:
		return DoublePoleBalance{}, fmt.Errorf("unsupported double-pole-balance mode: %s", mode)
	}
	return out, nil
}

type doublePoleState struct {
	cartPosition float64
	cartVelocity float64
	angle1       float64
	velocity1    float64
	angle2       float64
	velocity2    float64
}

// Evaluate drives box through the double-pole simulation until a pole or
// the cart goes out of bounds or MaxSteps elapses. A run that lasts
// GoalSteps earns the goal bonus; reaching GoalSteps does not by itself end
// the run.
func (t DoublePoleBalance) Evaluate(box BlackBox) float64 {
	state := doublePoleState{angle1: t.InitAngle1, angle2: t.InitAngle2}
	stepsSurvived := 0
	fitnessAcc := 0.0
	goalReached := false

	for step := 0; step < t.MaxSteps; step++ {
		in := box.InputVector()
		in.Set(0, scaleToUnit(state.cartPosition, 2.4, -2.4))
		in.Set(1, scaleToUnit(state.cartVelocity, 10, -10))
		in.Set(2, scaleToUnit(state.angle1, t.AngleLimit, -t.AngleLimit))
		in.Set(3, state.velocity1)
		in.Set(4, scaleToUnit(state.angle2, t.AngleLimit, -t.AngleLimit))
		in.Set(5, state.velocity2)

		box.Activate()
		force := io.Sat(box.OutputVector().Get(0), 1, -1)

		state = simulateDoublePole(force*10, state, 2)
		stepsSurvived++

		terminated, reachedGoal := doublePoleTermination(state, t, stepsSurvived)
		if terminated {
			goalReached = reachedGoal
			break
		}
		fitnessAcc += pole2StepFitness(stepsSurvived, state, t.Damping)
	}

	avgStepFitness := 0.0
	if stepsSurvived > 0 {
		avgStepFitness = fitnessAcc / float64(stepsSurvived)
	}
	return summarizeDoublePoleOutcome(t, stepsSurvived, avgStepFitness, goalReached)
}

func doublePoleTermination(state doublePoleState, t DoublePoleBalance, stepsSurvived int) (terminated, goalReached bool) {
	angle1Out := math.Abs(state.angle1) > t.AngleLimit
	angle2Out := math.Abs(state.angle2) > t.AngleLimit
	cartOut := math.Abs(state.cartPosition) > 2.4
	stepOut := stepsSurvived >= t.MaxSteps
	terminated = angle1Out || angle2Out || cartOut || stepOut
	if !terminated {
		return false, false
	}
	return true, stepsSurvived >= t.GoalSteps
}

// pole2StepFitness mirrors the reference damping-oriented per-step fitness
// accumulator: a ramp term for early steps, then a term rewarding low
// overall cart/pole energy once the run has settled.
func pole2StepFitness(step int, state doublePoleState, damping bool) float64 {
	if !damping {
		return 1
	}
	fitness1 := float64(step) / 1000.0
	if step < 100 {
		return fitness1 * 0.1
	}
	denom := math.Abs(state.cartPosition) + math.Abs(state.cartVelocity) + math.Abs(state.angle1) + math.Abs(state.velocity1)
	if denom < 1e-9 {
		denom = 1e-9
	}
	fitness2 := 0.75 / denom
	return fitness1*0.1 + fitness2*0.9
}

func summarizeDoublePoleOutcome(t DoublePoleBalance, stepsSurvived int, avgStepFitness float64, goalReached bool) float64 {
	if t.MaxSteps <= 0 || stepsSurvived <= 0 {
		return 0
	}
	survival := float64(stepsSurvived) / float64(t.MaxSteps)
	fitness := survival + 0.08*avgStepFitness
	if goalReached {
		fitness += 0.2
	}
	if math.IsNaN(fitness) || math.IsInf(fitness, 0) || fitness < 0 {
		return 0
	}
	return fitness
}

// simulateDoublePole advances the two-pole, one-cart system by the given
// number of delta-sized substeps under a constant force.
func simulateDoublePole(force float64, state doublePoleState, steps int) doublePoleState {
	const (
		halfLength1 = 0.5
		halfLength2 = 0.05
		cartMass    = 1.0
		poleMass1   = 0.1
		poleMass2   = 0.01
		muC         = 0.0005
		muP         = 0.000002
		gravity     = -9.81
		delta       = 0.01
	)

	if steps <= 0 {
		return state
	}

	next := state
	for i := 0; i < steps; i++ {
		cur := next

		em1 := poleMass1 * (1 - (3.0/4.0)*math.Pow(math.Cos(cur.angle1), 2))
		em2 := poleMass2 * (1 - (3.0/4.0)*math.Pow(math.Cos(cur.angle2), 2))

		ef1 := poleMass1*halfLength1*math.Pow(cur.velocity1, 2)*math.Sin(cur.angle1) +
			(3.0/4.0)*poleMass1*math.Cos(cur.angle1)*(((muP*cur.velocity1)/(poleMass1*halfLength1))+gravity*math.Sin(cur.angle1))
		ef2 := poleMass2*halfLength2*math.Pow(cur.velocity2, 2)*math.Sin(cur.angle2) +
			(3.0/4.0)*poleMass2*math.Cos(cur.angle2)*(((muP*cur.velocity2)/(poleMass2*halfLength2))+gravity*math.Sin(cur.angle2))

		nextCartAccel := (force - muC*sgn(cur.cartVelocity) + ef1 + ef2) / (cartMass + em1 + em2)
		nextPoleAccel1 := -(3.0 / (4.0 * halfLength1)) * ((nextCartAccel * math.Cos(cur.angle1)) + (gravity * math.Sin(cur.angle1)) + ((muP * cur.velocity1) / (poleMass1 * halfLength1)))
		nextPoleAccel2 := -(3.0 / (4.0 * halfLength2)) * ((nextCartAccel * math.Cos(cur.angle2)) + (gravity * math.Sin(cur.angle2)) + ((muP * cur.velocity2) / (poleMass2 * halfLength2)))

		nextCartVelocity := cur.cartVelocity + delta*nextCartAccel
		nextCartPosition := cur.cartPosition + delta*cur.cartVelocity
		nextVelocity1 := cur.velocity1 + delta*nextPoleAccel1
		nextAngle1 := cur.angle1 + delta*nextVelocity1
		nextVelocity2 := cur.velocity2 + delta*nextPoleAccel2
		nextAngle2 := cur.angle2 + delta*nextVelocity2

		next = doublePoleState{
			cartPosition: nextCartPosition,
			cartVelocity: nextCartVelocity,
			angle1:       nextAngle1,
			velocity1:    nextVelocity1,
			angle2:       nextAngle2,
			velocity2:    nextVelocity2,
		}
	}

	return next
}

func sgn(v float64) float64 {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

// scaleToUnit maps v from [min, max] to [-1, 1], clamping in case v falls
// outside the range (cart position and pole angle can briefly overshoot
// their nominal bounds by a substep before termination is checked).
func scaleToUnit(v, max, min float64) float64 {
	return io.Sat(io.ScaleValue(v, max, min), 1, -1)
}
