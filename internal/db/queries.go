package db

const (
	GetSetting = `SELECT value FROM settings WHERE key = ?`

	SetSetting = `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP
	`

	DeleteSetting = `DELETE FROM settings WHERE key = ?`
)

const (
	IncrementCounter = `
		INSERT INTO print_counters (vendor_id, product_id, date, count)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(vendor_id, product_id, date) DO UPDATE SET count = count + ?
	`

	GetCounterForDate = `
		SELECT count FROM print_counters
		WHERE vendor_id = ? AND product_id = ? AND date = ?
	`

	SumCounters = `SELECT COALESCE(SUM(count), 0) FROM print_counters`
)
