package service

import (
	"github.com/ravindra-p/stockpulse/internal/config"
	"github.com/ravindra-p/stockpulse/internal/engine"
)

// ThresholdsFromConfig applies nonzero engine overrides from configuration on
// top of the defaults.
func ThresholdsFromConfig(cfg config.EngineConfig) engine.Thresholds {
	t := engine.DefaultThresholds()

	if cfg.ExcessRatio > 0 {
		t.ExcessRatio = cfg.ExcessRatio
	}
	if cfg.Top3ShareThreshold > 0 {
		t.Top3ShareThreshold = cfg.Top3ShareThreshold
	}
	if cfg.ConcentrationPenalty > 0 {
		t.ConcentrationPenalty = cfg.ConcentrationPenalty
	}
	if cfg.ConfidentCoverage > 0 {
		t.ConfidentCoverage = cfg.ConfidentCoverage
	}
	if cfg.ThinCoverage > 0 {
		t.ThinCoverage = cfg.ThinCoverage
	}
	if cfg.AtRiskCoverage > 0 {
		t.AtRiskCoverage = cfg.AtRiskCoverage
	}
	if cfg.PageSize > 0 {
		t.PageSize = cfg.PageSize
	}

	return t
}
