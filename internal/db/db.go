package db

import (
	"context"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"complaintfinder/migrations"
)

// DB wraps a pgxpool connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// RunMigrations runs all embedded SQL migrations.
func (d *DB) RunMigrations(connString string) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Ping checks that the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.Pool.Ping(ctx)
}

// Close closes the connection pool.
func (d *DB) Close() {
	d.Pool.Close()
}

// SeedDevComplaints inserts sample complaints for development.
// Skips seeding when the table already has rows.
func (d *DB) SeedDevComplaints(ctx context.Context) (int, error) {
	var existing int
	if err := d.Pool.QueryRow(ctx, `SELECT count(*) FROM complaints`).Scan(&existing); err != nil {
		return 0, fmt.Errorf("failed to count complaints: %w", err)
	}
	if existing > 0 {
		return 0, nil
	}

	complaints := []struct {
		content  string
		category string
	}{
		{"아파트 단지 앞 불법주차 차량 단속을 요청합니다", "교통"},
		{"버스 배차 간격이 너무 길어요", "교통"},
		{"주차장 요금 감면 대상이 궁금합니다", "교통"},
		{"횡단보도 신호등이 고장났습니다", "교통"},
		{"밤마다 공사 소음이 심해서 잠을 잘 수 없습니다", "환경"},
		{"음식물 쓰레기 수거 요일을 알려주세요", "환경"},
		{"공장 악취 민원 접수합니다", "환경"},
		{"재산세 납부 기한이 언제인가요", "세금"},
		{"자동차세 연납 할인 신청 방법", "세금"},
		{"기초생활 수급자 신청 자격 문의", "복지"},
		{"어르신 돌봄 서비스 신청", "복지"},
		{"임대주택 입주 자격이 궁금합니다", "주택"},
		{"층간 소음 분쟁 조정 신청", "주택"},
		{"주민등록 등본 온라인 발급 방법", "일반행정"},
		{"여권 재발급 준비물 문의", "일반행정"},
	}

	for _, c := range complaints {
		if _, err := d.InsertComplaint(ctx, c.content, c.category); err != nil {
			return 0, fmt.Errorf("failed to seed complaint %q: %w", c.content, err)
		}
	}

	return len(complaints), nil
}
