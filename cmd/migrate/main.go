package main

import (
	"errors"
	"flag"
	"log"

	"yumzy/internal/pkg/config"
	"yumzy/pkg/database"

	"github.com/golang-migrate/migrate/v4"
	migrateDB "github.com/golang-migrate/migrate/v4/database"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	dir := flag.String("path", "migrations", "迁移文件目录")
	down := flag.Bool("down", false, "回滚一个版本")
	flag.Parse()

	config.LoadConfig()

	m, err := migrate.New("file://"+*dir, database.MigrateURL(config.GlobalConfig.Database))
	if err != nil {
		log.Fatal(err)
	}
	defer m.Close()

	if *down {
		if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal(err)
		}
		log.Println("Rolled back one version")
		return
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		// 上次迁移中断时数据库处于 dirty 状态，回退到该版本的上一版后重试
		var dirty migrate.ErrDirty
		if !errors.As(err, &dirty) {
			log.Fatal(err)
		}
		prev := forceTarget(dirty.Version)
		log.Printf("Database is dirty at version %d, forcing version %d...", dirty.Version, prev)
		if err := m.Force(prev); err != nil {
			log.Fatal("Failed to force version:", err)
		}
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal(err)
		}
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		log.Fatal(err)
	}
	log.Printf("Migration successful, version=%d dirty=%v", version, dirty)
}

// forceTarget dirty 版本的上一版，第一版中断时回到空库
func forceTarget(dirtyVersion int) int {
	if dirtyVersion <= 1 {
		return migrateDB.NilVersion
	}
	return dirtyVersion - 1
}
