package scape

import (
	"fmt"
	"math"
	"strings"

	"phenome/internal/io"
)

// SinglePoleBalance is the classic cart-pole balancing task: a network
// reads cart/pole state and outputs a force; fitness rewards staying
// upright and centered for as long as possible.
type SinglePoleBalance struct {
	MaxTimesteps         int
	TrackLengthThreshold float64
	PoleAngleThreshold   float64
	InitCartPos          float64
	InitPoleAngle        float64
}

// NewSinglePoleBalance returns the task configured with the reference
// defaults: 200,000 max timesteps, a 2.4m track half-length, a pole angle
// threshold of 12 degrees (pi/15 rad), and an upright, centered start
// state — the "gt" mode ForMode also returns.
func NewSinglePoleBalance() SinglePoleBalance {
	return SinglePoleBalance{
		MaxTimesteps:         200000,
		TrackLengthThreshold: 2.4,
		PoleAngleThreshold:   math.Pi / 15,
	}
}

func (SinglePoleBalance) Name() string { return "single-pole-balance" }

// ForMode returns t reconfigured for a named evaluation mode: "gt" is the
// upright training start state over the full timestep budget; "validation"
// and "test" start the pole tipped off-center over a short episode to
// score generalization away from the training distribution. "benchmark"
// shares the "test" configuration.
func (t SinglePoleBalance) ForMode(mode string) (SinglePoleBalance, error) {
	out := t
	switch strings.TrimSpace(strings.ToLower(mode)) {
	case "", "gt":
		out.MaxTimesteps = 200000
		out.InitCartPos = 0
		out.InitPoleAngle = 0
	case "validation":
		out.MaxTimesteps = 1000
		out.InitCartPos = 0.5 * t.TrackLengthThreshold
		out.InitPoleAngle = 0.25 * t.PoleAngleThreshold
	case "test", "benchmark":
		out.MaxTimesteps = 1000
		out.InitCartPos = -0.5 * t.TrackLengthThreshold
		out.InitPoleAngle = -0.25 * t.PoleAngleThreshold
	default:
		return SinglePoleBalance{}, fmt.Errorf("unsupported single-pole-balance mode: %s", mode)
	}
	return out, nil
}

const (
	singlePoleGravity        = 9.8
	singlePoleCartMass       = 1.0
	singlePoleMass           = 0.1
	singlePoleHalfLength     = 0.5
	singlePoleTimestep       = 0.02
	singlePoleForceMagnitude = 10.0
	singlePoleTwelveDegrees  = math.Pi / 15
)

// Evaluate drives box through the cart-pole simulation until the pole
// falls, the cart leaves the track, or MaxTimesteps elapses.
func (t SinglePoleBalance) Evaluate(box BlackBox) float64 {
	cartPos, cartVel, poleAngle, poleAngVel := t.InitCartPos, 0.0, t.InitPoleAngle, 0.0

	steps := 0
	for ; steps < t.MaxTimesteps; steps++ {
		in := box.InputVector()
		in.Set(0, 1.0)
		in.Set(1, cartPos/t.TrackLengthThreshold)
		in.Set(2, cartVel)
		in.Set(3, poleAngle/singlePoleTwelveDegrees)
		in.Set(4, poleAngVel)

		box.Activate()
		output := box.OutputVector().Get(0)
		force := io.Sat(output-0.5, 1, -1) * singlePoleForceMagnitude

		cartPos, cartVel, poleAngle, poleAngVel = stepSinglePole(cartPos, cartVel, poleAngle, poleAngVel, force)

		if math.Abs(cartPos) > t.TrackLengthThreshold || math.Abs(poleAngle) > t.PoleAngleThreshold {
			break
		}
	}

	return float64(steps) + (t.TrackLengthThreshold-math.Abs(cartPos))*5.0
}

// stepSinglePole advances the classic Barto-Sutton-Anderson cart-pole
// state by one Euler step under the given force.
func stepSinglePole(cartPos, cartVel, poleAngle, poleAngVel, force float64) (nextCartPos, nextCartVel, nextPoleAngle, nextPoleAngVel float64) {
	totalMass := singlePoleCartMass + singlePoleMass
	poleMassLength := singlePoleMass * singlePoleHalfLength

	cosTheta := math.Cos(poleAngle)
	sinTheta := math.Sin(poleAngle)

	temp := (force + poleMassLength*poleAngVel*poleAngVel*sinTheta) / totalMass
	angAcc := (singlePoleGravity*sinTheta - cosTheta*temp) /
		(singlePoleHalfLength * (4.0/3.0 - singlePoleMass*cosTheta*cosTheta/totalMass))
	linAcc := temp - poleMassLength*angAcc*cosTheta/totalMass

	nextCartPos = cartPos + singlePoleTimestep*cartVel
	nextCartVel = cartVel + singlePoleTimestep*linAcc
	nextPoleAngle = poleAngle + singlePoleTimestep*poleAngVel
	nextPoleAngVel = poleAngVel + singlePoleTimestep*angAcc
	return
}
