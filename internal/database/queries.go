package database

const (
	// User queries
	queryGetActiveUsers = `
		SELECT id, name, email, created_at, updated_at
		FROM users
		WHERE active = 1
		ORDER BY created_at`

	queryInsertUser = `
		INSERT OR IGNORE INTO users (id, name, email) VALUES (?, ?, ?)`

	queryGetUserById = `
		SELECT id, name, email, created_at, updated_at
		FROM users
		WHERE id = ? AND active = 1`

	queryGetUserByEmail = `
		SELECT id, name, email, created_at, updated_at
		FROM users
		WHERE email = ? AND active = 1`

	// Profile queries
	queryInsertProfile = `
		INSERT OR IGNORE INTO profiles (user_id) VALUES (?)`

	queryGetProfile = `
		SELECT user_id, confirmed_points, unconfirmed_points, total_points_earned,
		       level, streak_count, best_streak_count, total_scanned, monthly_carbon,
		       last_scan_date, last_monthly_bonus_check, monthly_bonuses_earned,
		       streak_protectors, double_points_days, has_advanced_analytics,
		       custom_avatar, version, updated_at
		FROM profiles
		WHERE user_id = ?`

	queryUpdateProfileScan = `
		UPDATE profiles
		SET confirmed_points = ?, unconfirmed_points = ?, total_points_earned = ?,
		    level = ?, streak_count = ?, best_streak_count = ?, total_scanned = ?,
		    monthly_carbon = ?, last_scan_date = ?, streak_protectors = ?,
		    version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND version = ?`

	queryUpdateProfilePurchase = `
		UPDATE profiles
		SET confirmed_points = ?, streak_protectors = ?, double_points_days = ?,
		    has_advanced_analytics = ?,
		    version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND version = ?`

	queryUpdateProfileSweep = `
		UPDATE profiles
		SET confirmed_points = ?, unconfirmed_points = ?,
		    version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND version = ?`

	queryUpdateProfileMonthlyBonus = `
		UPDATE profiles
		SET confirmed_points = ?, total_points_earned = ?,
		    last_monthly_bonus_check = ?, monthly_bonuses_earned = ?,
		    version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND version = ?`

	// Reward transaction queries
	queryInsertTransaction = `
		INSERT INTO reward_transactions (id, user_id, type, points, points_type, reason, description, date, confirmed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	queryGetTransactions = `
		SELECT id, user_id, type, points, points_type, reason, description, date, confirmed_at
		FROM reward_transactions
		WHERE user_id = ?
		ORDER BY date, id`

	queryConfirmTransaction = `
		UPDATE reward_transactions
		SET points_type = ?, confirmed_at = ?
		WHERE id = ? AND points_type = ?`

	// Achievement queries
	queryInsertAchievement = `
		INSERT OR IGNORE INTO earned_achievements (user_id, achievement_id, name, description, points, earned_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	queryGetAchievements = `
		SELECT user_id, achievement_id, name, description, points, earned_at
		FROM earned_achievements
		WHERE user_id = ?
		ORDER BY earned_at, achievement_id`

	// Purchased item queries
	queryInsertPurchasedItem = `
		INSERT OR IGNORE INTO purchased_items (user_id, item_id, name, cost, category, purchased_at, active)
		VALUES (?, ?, ?, ?, ?, ?, 1)`

	queryGetPurchasedItems = `
		SELECT user_id, item_id, name, cost, category, purchased_at, active
		FROM purchased_items
		WHERE user_id = ?
		ORDER BY purchased_at, item_id`

	queryHasPurchasedItem = `
		SELECT 1 FROM purchased_items WHERE user_id = ? AND item_id = ? LIMIT 1`

	// Badge queries
	queryInsertBadge = `
		INSERT OR IGNORE INTO badges (user_id, badge_id, activated_at) VALUES (?, ?, ?)`

	queryGetBadges = `
		SELECT badge_id FROM badges WHERE user_id = ? ORDER BY activated_at, badge_id`

	// Scan queries
	queryInsertScan = `
		INSERT INTO scans (id, user_id, barcode, product_name, category, confidence, carbon_estimate, date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	queryCountLowCarbonScans = `
		SELECT COUNT(*) FROM scans WHERE user_id = ? AND CAST(carbon_estimate AS REAL) < 1.0`

	// Leaderboard query
	queryLeaderboard = `
		SELECT u.id, u.name, u.email,
		       p.total_points_earned, p.confirmed_points, p.unconfirmed_points,
		       p.level, p.total_scanned, p.streak_count, p.monthly_carbon,
		       (SELECT COUNT(*) FROM earned_achievements a WHERE a.user_id = u.id) AS achievement_count
		FROM users u
		JOIN profiles p ON p.user_id = u.id
		WHERE u.active = 1
		ORDER BY p.total_points_earned DESC, p.level DESC, p.total_scanned DESC
		LIMIT ?`
)
