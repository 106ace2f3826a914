package config

const (
	defaultDataDir    = "~/.local/share/censuslink/data"
	defaultOutputDir  = "~/.local/share/censuslink/output"
	defaultLogDir     = "~/.local/share/censuslink/logs"
	defaultVerifiedDB = "~/.local/share/censuslink/verified.db"

	defaultScoreFloor      = 60
	defaultTier1Min        = 90
	defaultTier2Min        = 80
	defaultRegressionYears = 10
	defaultDedupYearGap    = 10
	defaultBirthPlace      = "VA"
	defaultBlockingPolicy  = "strict"
	defaultBatchSize       = 500

	defaultBoostFloor       = 20
	defaultHeadBonus        = 20
	defaultHeadNameCutoff   = 0.9
	defaultSpouseBonus      = 20
	defaultChildBonus       = 8
	defaultParentBonus      = 15
	defaultCoResidenceBonus = 15

	defaultMinMemberScore = 60

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:    defaultDataDir,
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
			VerifiedDB: defaultVerifiedDB,
		},
		Matching: Matching{
			ScoreFloor:        defaultScoreFloor,
			Tier1Min:          defaultTier1Min,
			Tier2Min:          defaultTier2Min,
			RegressionYears:   defaultRegressionYears,
			DedupYearGap:      defaultDedupYearGap,
			DefaultBirthPlace: defaultBirthPlace,
			BlockingPolicy:    defaultBlockingPolicy,
			BatchSize:         defaultBatchSize,
		},
		Boosting: Boosting{
			Enabled:          true,
			Floor:            defaultBoostFloor,
			HeadBonus:        defaultHeadBonus,
			HeadNameCutoff:   defaultHeadNameCutoff,
			SpouseBonus:      defaultSpouseBonus,
			ChildBonus:       defaultChildBonus,
			ParentBonus:      defaultParentBonus,
			CoResidenceBonus: defaultCoResidenceBonus,
		},
		Relations: Relations{
			MinMemberScore:    defaultMinMemberScore,
			SymmetricSiblings: true,
			SymmetricCousins:  false,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
