package catalogue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
)

type actionModel struct {
	ActionID    string `gorm:"column:action_id;type:varchar(64);primaryKey"`
	Position    int    `gorm:"column:position;not null;default:0;index"`
	Title       string `gorm:"column:title;type:varchar(200);not null"`
	Description string `gorm:"column:description;type:text"`
	Category    string `gorm:"column:category;type:varchar(32);not null;index"`
	DurationMin int    `gorm:"column:duration_min;not null"`
	DurationMax int    `gorm:"column:duration_max;not null"`
	EnergyLevel string `gorm:"column:energy_level;type:varchar(16)"`
	IsPremium   bool   `gorm:"column:is_premium;not null;default:false"`
	Icon        string `gorm:"column:icon;type:varchar(64)"`
}

func (actionModel) TableName() string { return "micro_actions" }

func (m actionModel) toDomain() *domain.MicroAction {
	return &domain.MicroAction{
		ID:          m.ActionID,
		Title:       m.Title,
		Description: m.Description,
		Category:    m.Category,
		DurationMin: m.DurationMin,
		DurationMax: m.DurationMax,
		EnergyLevel: m.EnergyLevel,
		IsPremium:   m.IsPremium,
		Icon:        m.Icon,
	}
}

func fromDomain(a *domain.MicroAction, position int) actionModel {
	return actionModel{
		ActionID:    a.ID,
		Position:    position,
		Title:       a.Title,
		Description: a.Description,
		Category:    a.Category,
		DurationMin: a.DurationMin,
		DurationMax: a.DurationMax,
		EnergyLevel: a.EnergyLevel,
		IsPremium:   a.IsPremium,
		Icon:        a.Icon,
	}
}

// OpenPostgres connects gorm to the catalogue database.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open catalogue database: %w", err)
	}
	return db, nil
}

type postgresCatalogue struct {
	db *gorm.DB
}

// NewPostgresCatalogue reads actions from the micro_actions table ordered by position.
func NewPostgresCatalogue(db *gorm.DB) domain.ActionCatalogue {
	return &postgresCatalogue{db: db}
}

func (c *postgresCatalogue) ListActions(ctx context.Context) ([]*domain.MicroAction, error) {
	var rows []actionModel
	if err := c.db.WithContext(ctx).Order("position ASC, action_id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}

	actions := make([]*domain.MicroAction, 0, len(rows))
	for _, row := range rows {
		actions = append(actions, row.toDomain())
	}
	return actions, nil
}

func (c *postgresCatalogue) GetAction(ctx context.Context, actionID string) (*domain.MicroAction, error) {
	var row actionModel
	err := c.db.WithContext(ctx).Where("action_id = ?", actionID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrActionNotFound
		}
		return nil, fmt.Errorf("get action: %w", err)
	}
	return row.toDomain(), nil
}

// Seed upserts actions into the table, keeping their list order as position.
func Seed(ctx context.Context, db *gorm.DB, actions []*domain.MicroAction) error {
	if len(actions) == 0 {
		return nil
	}

	rows := make([]actionModel, 0, len(actions))
	for i, a := range actions {
		rows = append(rows, fromDomain(a, i))
	}

	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "action_id"}},
		UpdateAll: true,
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("seed catalogue: %w", err)
	}

	slog.InfoContext(ctx, "catalogue seeded", slog.Int("action_count", len(rows)))
	return nil
}
