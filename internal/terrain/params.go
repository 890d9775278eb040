package terrain

// StairsParams configures the pyramid stairs generators.
type StairsParams struct {
	StepWidth    float64 `yaml:"step_width"`
	StepHeight   float64 `yaml:"step_height"` // scaled by difficulty
	PlatformSize float64 `yaml:"platform_size"`
	GoingUp      bool    `yaml:"-"` // set from the generator name
}

// SlopeParams configures the slope generators.
type SlopeParams struct {
	TotalHeight  float64 `yaml:"total_height"` // scaled by difficulty
	BarHeight    float64 `yaml:"bar_height"`   // scaled by difficulty
	BarWidth     float64 `yaml:"bar_width"`
	PlatformSize float64 `yaml:"platform_size"`
	EdgeWidth    float64 `yaml:"edge_width"` // flat collar between slope and footprint edge
	GoingUp      bool    `yaml:"-"` // set from the generator name
}

// BlocksParams configures the random blocks generator.
type BlocksParams struct {
	NumBlocks       int     `yaml:"num_blocks"`
	MinBlockSize    float64 `yaml:"min_block_size"`
	MaxBlockSize    float64 `yaml:"max_block_size"`
	MaxBlockHeight  float64 `yaml:"max_block_height"` // scaled by difficulty
	PlatformSize    float64 `yaml:"platform_size"`
	CentralPlatform bool    `yaml:"central_platform"`
}

// PerlinParams configures the noise field generator.
type PerlinParams struct {
	ResolutionPerMeter float64 `yaml:"resolution_per_meter"`
	Scale              float64 `yaml:"scale"`
	Octaves            int     `yaml:"octaves"`
	HeightMultiplier   float64 `yaml:"height_multiplier"` // scaled by difficulty
	PlatformSize       float64 `yaml:"platform_size"`
	PlatformHeight     float64 `yaml:"platform_height"`
	PlatformSmoothing  float64 `yaml:"platform_smoothing_distance"`
	EdgeSmoothing      float64 `yaml:"edge_smoothing_distance"`
}

// CheckersParams configures the checkers generator.
type CheckersParams struct {
	BlockSize    float64 `yaml:"block_size"`
	BlockHeight  float64 `yaml:"block_height"` // scaled by difficulty
	PlatformSize float64 `yaml:"platform_size"`
	Noise        float64 `yaml:"noise"` // scaled by difficulty
}

// TiltedSquaresParams configures the tilted squares generator.
type TiltedSquaresParams struct {
	BlockSize    float64 `yaml:"block_size"`
	BlockHeight  float64 `yaml:"block_height"` // scaled by difficulty
	PlatformSize float64 `yaml:"platform_size"`
	Noise        float64 `yaml:"noise"` // scaled by difficulty
}

// SquareCentricParams configures the concentric rings generator.
type SquareCentricParams struct {
	StepWidth    float64 `yaml:"step_width"`
	StepHeight   float64 `yaml:"step_height"` // scaled by difficulty
	StepSpacing  float64 `yaml:"step_spacing"`
	PlatformSize float64 `yaml:"platform_size"`
}

// Params holds one record per generator, keyed by generator name in YAML.
type Params struct {
	StairsUp      StairsParams        `yaml:"stairs_upwards"`
	StairsDown    StairsParams        `yaml:"stairs_downwards"`
	SlopeUp       SlopeParams         `yaml:"slope_upwards"`
	SlopeDown     SlopeParams         `yaml:"slope_downwards"`
	RandomBlocks  BlocksParams        `yaml:"random_blocks"`
	Perlin        PerlinParams        `yaml:"perlin"`
	Checkers      CheckersParams      `yaml:"checkers"`
	TiltedSquares TiltedSquaresParams `yaml:"tilted_squares"`
	SquareCentric SquareCentricParams `yaml:"square_centric"`
}

// DefaultParams returns the reference parameter set for 8 m cells.
func DefaultParams() Params {
	stairs := StairsParams{StepWidth: 0.6, StepHeight: 0.08, PlatformSize: 1.0}
	slope := SlopeParams{TotalHeight: 0.5, BarHeight: 0.08, BarWidth: 0.2, PlatformSize: 1.0, EdgeWidth: 1.0}

	p := Params{
		StairsUp:   stairs,
		StairsDown: stairs,
		SlopeUp:    slope,
		SlopeDown:  slope,
		RandomBlocks: BlocksParams{
			NumBlocks:       100,
			MinBlockSize:    0.5,
			MaxBlockSize:    1.0,
			MaxBlockHeight:  0.1,
			PlatformSize:    0.75,
			CentralPlatform: true,
		},
		Perlin: PerlinParams{
			ResolutionPerMeter: 20,
			Scale:              0.2,
			Octaves:            4,
			HeightMultiplier:   0.3,
			PlatformSize:       0.75,
			PlatformSmoothing:  0.4,
			EdgeSmoothing:      0.4,
		},
		Checkers: CheckersParams{
			BlockSize:    0.5,
			BlockHeight:  0.09,
			PlatformSize: 0.75,
			Noise:        0.02,
		},
		TiltedSquares: TiltedSquaresParams{
			BlockSize:    0.5,
			BlockHeight:  0.08,
			PlatformSize: 1.0,
			Noise:        0.04,
		},
		SquareCentric: SquareCentricParams{
			StepWidth:    0.6,
			StepHeight:   0.08,
			StepSpacing:  0.7,
			PlatformSize: 1.0,
		},
	}
	p.StairsUp.GoingUp = true
	p.SlopeUp.GoingUp = true
	return p
}
