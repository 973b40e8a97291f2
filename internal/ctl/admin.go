package ctl

func runClear(cfg *Config) error {
	if err := NewClient(cfg.Addr).ClearAll(); err != nil {
		return err
	}
	info("[animctl] cleared all animations")
	return nil
}

func runCancel(cfg *Config, id string) error {
	if err := NewClient(cfg.Addr).Cancel(id); err != nil {
		return err
	}
	info("[animctl] cancelled %s", id)
	return nil
}

func runMode(cfg *Config, enabled bool) error {
	mode, err := NewClient(cfg.Addr).SetCinematic(enabled)
	if err != nil {
		return err
	}
	if mode.Cinematic {
		info("[animctl] cinematic mode on (speed %.1fx, quality %s)", mode.SpeedMultiplier, mode.DefaultQuality)
	} else {
		info("[animctl] cinematic mode off")
	}
	return nil
}
