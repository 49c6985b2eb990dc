// Package gormhost is the standalone host implementation: settings and
// registered tokens live in a SQLite database via Gorm, translations
// come from an injected i18n translator. It lets the plugin run and be
// restarted outside a real automation runtime.
package gormhost

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"elapse/internal/host"
)

type settingModel struct {
	Key           string         `gorm:"column:key;primaryKey"`
	Value         datatypes.JSON `gorm:"column:value"`
	UpdatedAtUnix int64          `gorm:"column:updated_at"`
}

func (settingModel) TableName() string { return "settings" }

type tokenModel struct {
	TokenID       string         `gorm:"column:token_id;primaryKey"`
	Title         string         `gorm:"column:title"`
	Type          string         `gorm:"column:type"`
	Value         datatypes.JSON `gorm:"column:value"`
	UpdatedAtUnix int64          `gorm:"column:updated_at"`
}

func (tokenModel) TableName() string { return "tokens" }

// Host implements host.Host on top of a SQLite file.
type Host struct {
	db        *gorm.DB
	translate host.Translator
	identity  host.Identity
}

// Open initializes (and migrates) the backing database.
func Open(path string, translate host.Translator, identity host.Identity) (*Host, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("gormhost: db path cannot be empty")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&settingModel{}, &tokenModel{}); err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// Single-writer plugin; one connection avoids SQLite lock churn.
	sqlDB.SetMaxOpenConns(1)
	return &Host{db: db, translate: translate, identity: identity}, nil
}

// Close closes the underlying database connection.
func (h *Host) Close() error {
	if h == nil || h.db == nil {
		return nil
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (h *Host) GetSetting(ctx context.Context, key string) ([]byte, error) {
	if h == nil || h.db == nil {
		return nil, fmt.Errorf("gormhost: not initialized")
	}
	var model settingModel
	err := h.db.WithContext(ctx).Where("key = ?", key).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return []byte(model.Value), nil
}

func (h *Host) SetSetting(ctx context.Context, key string, value []byte) error {
	if h == nil || h.db == nil {
		return fmt.Errorf("gormhost: not initialized")
	}
	model := settingModel{
		Key:           key,
		Value:         datatypes.JSON(value),
		UpdatedAtUnix: time.Now().UnixMilli(),
	}
	return h.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&model).Error
}

func (h *Host) CreateToken(ctx context.Context, id string, spec host.TokenSpec) (host.TokenHandle, error) {
	if h == nil || h.db == nil {
		return nil, fmt.Errorf("gormhost: not initialized")
	}
	model := tokenModel{
		TokenID:       id,
		Title:         spec.Title,
		Type:          spec.Type,
		UpdatedAtUnix: time.Now().UnixMilli(),
	}
	err := h.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "type", "updated_at"}),
		}).
		Create(&model).Error
	if err != nil {
		return nil, err
	}
	return &tokenHandle{host: h, id: id}, nil
}

func (h *Host) Translate(key string) string {
	if h == nil || h.translate == nil {
		return key
	}
	return h.translate.Translate(key)
}

func (h *Host) Identity() host.Identity {
	if h == nil {
		return host.Identity{}
	}
	return h.identity
}

// ListTokenIDs returns the identifiers of every persisted token.
// Used by startup to report what survived a restart.
func (h *Host) ListTokenIDs(ctx context.Context) ([]string, error) {
	if h == nil || h.db == nil {
		return nil, fmt.Errorf("gormhost: not initialized")
	}
	var ids []string
	if err := h.db.WithContext(ctx).Model(&tokenModel{}).Order("token_id ASC").Pluck("token_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

type tokenHandle struct {
	host *Host
	id   string
}

func (t *tokenHandle) ID() string { return t.id }

func (t *tokenHandle) SetValue(ctx context.Context, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("gormhost: encoding token value: %w", err)
	}
	res := t.host.db.WithContext(ctx).Model(&tokenModel{}).
		Where("token_id = ?", t.id).
		Updates(map[string]any{
			"value":      datatypes.JSON(raw),
			"updated_at": time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (t *tokenHandle) Unregister(ctx context.Context) error {
	return t.host.db.WithContext(ctx).
		Where("token_id = ?", t.id).
		Delete(&tokenModel{}).Error
}
