package constants

const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes

	RedisKeyTokenBlacklist = "auth:blacklist:"

	// Capacity bounds for a recruitment post (author included).
	PostCapacityMin = 2
	PostCapacityMax = 100

	// Grace window after the scheduled start before an IN_PROGRESS post is
	// auto-completed and a never-filled OPEN post is expired.
	DefaultGracePeriodMinutes = 60

	// Asynq task types for the periodic sweeps.
	TaskSweepPromoteDue   = "sweep:promote_due"
	TaskSweepAdvancePosts = "sweep:advance_posts"
)
