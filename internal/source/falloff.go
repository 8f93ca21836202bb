package source

// Falloff weights a source's contribution to a panel at distance dist.
// Implementations return a value in [0,1].
type Falloff interface {
	Factor(dist float64, s *Source) float64
}

// Diffusion spreads a static source outward as it ages and fades it to the
// floor by MaxAge.
type Diffusion struct {
	Scale   float64 // distance to falloff units
	AgeRate float64 // spread per unit of age
	MaxAge  float64
	Floor   float64 // minimum contribution of any live source
}

// DefaultDiffusion matches the diffuse and northern lights effects.
var DefaultDiffusion = Diffusion{Scale: 0.015, AgeRate: 0.2, MaxAge: 40, Floor: 0.05}

func (f Diffusion) Factor(dist float64, s *Source) float64 {
	d := dist*f.Scale - s.Age*f.AgeRate
	if d < 0 {
		d = 0
	}
	factor := clamp01(1.0 / (d*2.0 + 1.0))
	if s.Age >= f.MaxAge {
		factor = 0
	} else {
		factor *= 1.0 - s.Age/f.MaxAge
	}
	if factor < f.Floor {
		factor = f.Floor
	}
	return factor
}

// Star is a point light with an inverse square halo. Radius is the distance
// that counts as one unit, normally the adjacent panel spacing.
type Star struct{ Radius float64 }

func (f Star) Factor(dist float64, _ *Source) float64 {
	if f.Radius <= 0 {
		return 0
	}
	d := dist / f.Radius
	return clamp01(1.0 / (d*d*1.5 + 1.0))
}

// Bubble is a Star measured from the surface of the source's own Radius, in
// the same units. The offset is squared with its sign dropped, so the factor
// peaks on the surface and dips slightly towards the centre.
type Bubble struct{ Radius float64 }

func (f Bubble) Factor(dist float64, s *Source) float64 {
	if f.Radius <= 0 {
		return 0
	}
	d := dist/f.Radius - s.Radius
	return clamp01(1.0 / (d*d*1.5 + 1.0))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
