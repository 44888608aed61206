package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all engine configuration values
type Config struct {
	Display   DisplayConfig           `yaml:"display"`
	World     WorldConfig             `yaml:"world"`
	Collision CollisionConfig         `yaml:"collision"`
	Movement  MovementConfig          `yaml:"movement"`
	Combat    CombatConfig            `yaml:"combat"`
	Doors     DoorConfig              `yaml:"doors"`
	Pickups   PickupConfig            `yaml:"pickups"`
	Enemies   map[string]EnemyConfig  `yaml:"enemies"`
	Weapons   map[string]WeaponConfig `yaml:"weapons"`
	Audio     AudioConfig             `yaml:"audio"`
	Clips     map[string]string       `yaml:"clips"`
	Levels    []string                `yaml:"levels"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	TicksPerSec  int    `yaml:"ticks_per_second"`
}

type WorldConfig struct {
	TileSize   float64 `yaml:"tile_size"`
	WallHeight float64 `yaml:"wall_height"`
	// ParallelCompile builds mesh rows on the worker pool
	ParallelCompile bool `yaml:"parallel_compile"`
}

type CollisionConfig struct {
	GridCellSize    float64 `yaml:"grid_cell_size"` // in tiles
	PlayerFootprint float64 `yaml:"player_footprint"`
}

type MovementConfig struct {
	MoveSpeed     float64 `yaml:"move_speed"`
	RotationSpeed float64 `yaml:"rotation_speed"`
}

type CombatConfig struct {
	MeleeRange        float64 `yaml:"melee_range"`
	FlameRange        float64 `yaml:"flame_range"`
	HitscanRange      float64 `yaml:"hitscan_range"`
	BarrelRadius      float64 `yaml:"barrel_radius"`
	BarrelDamage      float64 `yaml:"barrel_damage"`
	BarrelHealth      float64 `yaml:"barrel_health"`
	BarrelFuse        float64 `yaml:"barrel_fuse"`
	ExplosionRadius   float64 `yaml:"explosion_radius"`
	ExplosionDamage   float64 `yaml:"explosion_damage"`
	ExplosionLifetime float64 `yaml:"explosion_lifetime"`
	FireDPS           float64 `yaml:"fire_dps"`
	FireLifetime      float64 `yaml:"fire_lifetime"`
	BloodLifetime     float64 `yaml:"blood_lifetime"`
	BleedInterval     float64 `yaml:"bleed_interval"`
	RocketSpeed       float64 `yaml:"rocket_speed"`
	RocketLifetime    float64 `yaml:"rocket_lifetime"`
	RocketHoming      float64 `yaml:"rocket_homing"`
	// Particles toggles blood spawning (the external particle-detail setting)
	Particles bool `yaml:"particles"`
}

type DoorConfig struct {
	Thickness     float64 `yaml:"thickness"`
	OpenDistance  float64 `yaml:"open_distance"`
	Speed         float64 `yaml:"speed"`
	SecretSpeed   float64 `yaml:"secret_speed"`
	AutoCloseTime float64 `yaml:"auto_close_time"`
}

type PickupConfig struct {
	Radius float64 `yaml:"radius"`
	Size   float64 `yaml:"size"`
}

type EnemyConfig struct {
	Health float64 `yaml:"health"`
	Size   float64 `yaml:"size"`
	Death  string  `yaml:"death_clip"`
}

// WeaponConfig describes one weapon. Class is melee, hitscan, rocket or gas.
type WeaponConfig struct {
	Class  string  `yaml:"class"`
	Damage float64 `yaml:"damage"`
	Ammo   string  `yaml:"ammo,omitempty"`
}

type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Falloff    float64 `yaml:"falloff"` // distance at which volume halves
	MaxRange   float64 `yaml:"max_range"`
}

var GlobalConfig *Config

// LoadConfig loads the configuration from a YAML file. Missing values fall
// back to Default.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}

	// Set global config for easy access
	GlobalConfig = config

	return config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Validate rejects values the engine cannot work with
func (c *Config) Validate() error {
	if c.World.TileSize <= 0 {
		return fmt.Errorf("world.tile_size must be positive, got %v", c.World.TileSize)
	}
	if c.World.WallHeight <= 0 {
		return fmt.Errorf("world.wall_height must be positive, got %v", c.World.WallHeight)
	}
	for name, w := range c.Weapons {
		switch w.Class {
		case "melee", "hitscan", "rocket", "gas":
		default:
			return fmt.Errorf("weapon %s has unknown class %q", name, w.Class)
		}
	}
	return nil
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  960,
			ScreenHeight: 720,
			WindowTitle:  "Level Viewer",
			Resizable:    true,
			TicksPerSec:  60,
		},
		World: WorldConfig{
			TileSize:        1,
			WallHeight:      1,
			ParallelCompile: true,
		},
		Collision: CollisionConfig{
			GridCellSize:    4,
			PlayerFootprint: 0.4,
		},
		Movement: MovementConfig{
			MoveSpeed:     3,
			RotationSpeed: 2.5,
		},
		Combat: CombatConfig{
			MeleeRange:        1.2,
			FlameRange:        3,
			HitscanRange:      64,
			BarrelRadius:      1.5,
			BarrelDamage:      40,
			BarrelHealth:      10,
			BarrelFuse:        0.25,
			ExplosionRadius:   1.5,
			ExplosionDamage:   60,
			ExplosionLifetime: 0.5,
			FireDPS:           10,
			FireLifetime:      3,
			BloodLifetime:     1,
			BleedInterval:     0.5,
			RocketSpeed:       8,
			RocketLifetime:    5,
			RocketHoming:      0.15,
			Particles:         true,
		},
		Doors: DoorConfig{
			Thickness:     0.1,
			OpenDistance:  1.5,
			Speed:         1.5,
			SecretSpeed:   0.5,
			AutoCloseTime: 4,
		},
		Pickups: PickupConfig{
			Radius: 0.5,
			Size:   0.4,
		},
		Enemies: map[string]EnemyConfig{
			"nazi":      {Health: 25, Size: 0.5, Death: "death"},
			"dog":       {Health: 10, Size: 0.5, Death: "dog_death"},
			"ss":        {Health: 100, Size: 0.5, Death: "death"},
			"sergeant":  {Health: 50, Size: 0.5, Death: "death"},
			"ghost":     {Health: 40, Size: 0.5, Death: "ghost_death"},
			"zombie":    {Health: 60, Size: 0.5, Death: "death"},
			"captain":   {Health: 200, Size: 0.6, Death: "boss_death"},
			"commander": {Health: 400, Size: 0.7, Death: "boss_death"},
		},
		Weapons: map[string]WeaponConfig{
			"knife":           {Class: "melee", Damage: 15},
			"pistol":          {Class: "hitscan", Damage: 10, Ammo: "bullets"},
			"machine_gun":     {Class: "hitscan", Damage: 12, Ammo: "bullets"},
			"shotgun":         {Class: "hitscan", Damage: 30, Ammo: "shells"},
			"chaingun":        {Class: "hitscan", Damage: 12, Ammo: "bullets"},
			"rocket_launcher": {Class: "rocket", Damage: 80, Ammo: "rockets"},
			"flamethrower":    {Class: "gas", Damage: 5, Ammo: "gas"},
		},
		Audio: AudioConfig{
			Enabled:    false,
			SampleRate: 44100,
			Falloff:    4,
			MaxRange:   24,
		},
		Clips: map[string]string{},
	}
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetTileSize() float64 {
	return c.World.TileSize
}

func (c *Config) GetWallHeight() float64 {
	return c.World.WallHeight
}

// GetGridCellSize returns the segment grid cell size in world units
func (c *Config) GetGridCellSize() float64 {
	if c.Collision.GridCellSize <= 0 {
		return 4 * c.World.TileSize
	}
	return c.Collision.GridCellSize * c.World.TileSize
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Movement.MoveSpeed
}

func (c *Config) GetRotSpeed() float64 {
	return c.Movement.RotationSpeed
}

// GetEnemyConfig returns the settings for an enemy kind
func (c *Config) GetEnemyConfig(kind string) EnemyConfig {
	if ec, ok := c.Enemies[kind]; ok {
		return ec
	}
	return EnemyConfig{Health: 25, Size: 0.5, Death: "death"} // Default fallback
}

// GetWeaponConfig returns the settings for a weapon
func (c *Config) GetWeaponConfig(weapon string) (WeaponConfig, bool) {
	w, ok := c.Weapons[weapon]
	return w, ok
}

// GetClipPath maps a clip name to its file, defaulting to assets/sounds/<name>.wav
func (c *Config) GetClipPath(clip string) string {
	if path, ok := c.Clips[clip]; ok {
		return path
	}
	return "assets/sounds/" + clip + ".wav"
}
