package main

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/sales-report-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-report-api/internal/config"
)

// step é uma alteração idempotente do schema
type step struct {
	name string
	sql  string
}

var steps = []step{
	{
		name: "criar tabela report_runs",
		sql: `CREATE TABLE IF NOT EXISTS report_runs (
			id           VARCHAR(16) PRIMARY KEY,
			source       TEXT        NOT NULL,
			status       VARCHAR(16) NOT NULL,
			record_count INTEGER     NOT NULL DEFAULT 0,
			kpis         JSONB,
			charts       JSONB,
			insight      TEXT        NOT NULL DEFAULT '',
			message      TEXT        NOT NULL DEFAULT '',
			error        TEXT        NOT NULL DEFAULT '',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "restringir status de report_runs",
		sql: `DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE table_name = 'report_runs'
				AND constraint_name = 'report_runs_status_check'
			) THEN
				ALTER TABLE report_runs
					ADD CONSTRAINT report_runs_status_check CHECK (status IN ('SUCCESS', 'FAILED'));
			END IF;
		END $$`,
	},
	{
		name: "criar índice report_runs_created_at",
		sql:  `CREATE INDEX IF NOT EXISTS report_runs_created_at_idx ON report_runs (created_at DESC)`,
	},
}

func setupLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.Info("Iniciando script de migração...")
}

func migrate(ctx context.Context, conn postgres.Conn) error {
	return conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for i, s := range steps {
			startTime := time.Now()
			if _, err := tx.ExecContext(ctx, s.sql); err != nil {
				logrus.WithError(err).Errorf("ERRO na etapa [%d/%d] %s", i+1, len(steps), s.name)
				return err
			}
			logrus.Infof("Etapa [%d/%d] %s concluída em %v", i+1, len(steps), s.name, time.Since(startTime))
		}
		return nil
	})
}

func main() {
	setupLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao carregar configuração")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	logrus.Info("Conectando ao banco de dados...")
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao conectar ao banco de dados")
	}
	defer conn.Close()

	startTime := time.Now()
	if err := migrate(ctx, conn); err != nil {
		logrus.WithError(err).Fatal("Migração revertida")
	}

	logrus.Infof("Migração concluída em %v!", time.Since(startTime))
}
