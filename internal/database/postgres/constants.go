package postgres

// Postgres error codes
const (
	pgUniqueViolation = "23505"
)

// User queries
const (
	queryUserByID = `
		SELECT user_id, username, xp, level, biz_coins, skills, created_at
		FROM users
		WHERE user_id = $1`

	queryUserByIDForUpdate = `
		SELECT user_id, username, xp, level, biz_coins, skills, created_at
		FROM users
		WHERE user_id = $1
		FOR UPDATE`

	queryUserByUsername = `
		SELECT user_id, username, xp, level, biz_coins, skills, created_at
		FROM users
		WHERE username = $1`

	queryInsertUser = `
		INSERT INTO users (user_id, username, xp, level, biz_coins, skills, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())`

	queryUpdateUser = `
		UPDATE users
		SET username = $1, xp = $2, level = $3, biz_coins = $4, skills = $5, updated_at = NOW()
		WHERE user_id = $6`
)

// Portfolio queries
const (
	queryPortfolioByUser = `
		SELECT business_id, manager_level, last_collected
		FROM user_portfolio
		WHERE user_id = $1
		ORDER BY business_id`

	queryUpsertPortfolioItem = `
		INSERT INTO user_portfolio (user_id, business_id, manager_level, last_collected)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, business_id) DO UPDATE
		SET manager_level = EXCLUDED.manager_level, last_collected = EXCLUDED.last_collected`
)

// Game save queries
const (
	queryLoadSave = `
		SELECT save_data
		FROM game_saves
		WHERE user_id = $1 AND business_id = $2`

	queryUpsertSave = `
		INSERT INTO game_saves (user_id, business_id, save_data, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, business_id) DO UPDATE
		SET save_data = EXCLUDED.save_data, updated_at = NOW()`

	queryDeleteSave = `
		DELETE FROM game_saves
		WHERE user_id = $1 AND business_id = $2`
)
