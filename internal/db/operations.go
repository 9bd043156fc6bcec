package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type SettingsOperations struct{}

func (o *SettingsOperations) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := GetDB().QueryRowContext(ctx, GetSetting, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", sql.ErrNoRows
		}
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, nil
}

func (o *SettingsOperations) SetSetting(ctx context.Context, key, value string) error {
	_, err := GetDB().ExecContext(ctx, SetSetting, key, value, value)
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

func (o *SettingsOperations) DeleteSetting(ctx context.Context, key string) error {
	_, err := GetDB().ExecContext(ctx, DeleteSetting, key)
	if err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	return nil
}

type CounterOperations struct{}

func (o *CounterOperations) IncrementPrintCount(ctx context.Context, vendorID, productID uint16, count int) error {
	today := time.Now().Format("2006-01-02")
	_, err := GetDB().ExecContext(ctx, IncrementCounter, vendorID, productID, today, count, count)
	if err != nil {
		return fmt.Errorf("failed to increment print counter: %w", err)
	}
	return nil
}

func (o *CounterOperations) GetTodayCount(ctx context.Context, vendorID, productID uint16) (int64, error) {
	today := time.Now().Format("2006-01-02")
	var count int64
	err := GetDB().QueryRowContext(ctx, GetCounterForDate, vendorID, productID, today).Scan(&count)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get print counter: %w", err)
	}
	return count, nil
}

func (o *CounterOperations) GetTotalCount(ctx context.Context) (int64, error) {
	var total int64
	err := GetDB().QueryRowContext(ctx, SumCounters).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum print counters: %w", err)
	}
	return total, nil
}

var (
	Settings = &SettingsOperations{}
	Counters = &CounterOperations{}
)
