// Package savegame persiste o estado local do jogador entre sessões em um
// banco SQLite. O cliente carrega o perfil no boot e salva no shutdown.
package savegame

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PlayerProfile representa o esquema do banco para o estado de um jogador.
type PlayerProfile struct {
	PlayerID  uint16 `gorm:"primaryKey;autoIncrement:false"`
	Name      string
	Health    int
	X, Y, Z   float32
	UpdatedAt time.Time // Para controle interno do GORM
}

// MetaEntry armazena informações globais do save no banco.
type MetaEntry struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

const CurrentFormatVersion = 1

// Store encapsula a conexão com o banco de saves.
type Store struct {
	DB *gorm.DB
}

// Open abre (ou cria) o banco SQLite no caminho dado e roda migrações.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	// Configuramos o logger para ser silencioso em produção
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no SQLite: %w", err)
	}

	// Migração automática das tabelas
	if err := db.AutoMigrate(&PlayerProfile{}, &MetaEntry{}); err != nil {
		return nil, fmt.Errorf("falha na migração do banco: %w", err)
	}

	db.Save(&MetaEntry{Key: "FormatVersion", Value: fmt.Sprint(CurrentFormatVersion)})

	log.Printf("[Save] Banco de dados SQLite aberto: %s", path)
	return &Store{DB: db}, nil
}

// SaveProfile salva (upsert) o perfil de um jogador.
func (s *Store) SaveProfile(p *PlayerProfile) error {
	if s.DB == nil {
		return fmt.Errorf("banco de dados não inicializado")
	}

	err := s.DB.Save(p).Error
	if err != nil {
		log.Printf("[Save] ERRO ao salvar perfil %d: %v", p.PlayerID, err)
	}
	return err
}

// LoadProfile tenta carregar o perfil de um jogador pelo id.
func (s *Store) LoadProfile(id uint16) (*PlayerProfile, error) {
	if s.DB == nil {
		return nil, fmt.Errorf("banco de dados não inicializado")
	}

	var p PlayerProfile
	if err := s.DB.First(&p, "player_id = ?", id).Error; err != nil {
		return nil, err // Retorna error se não encontrar
	}
	return &p, nil
}

// Close encerra a conexão com o banco.
func (s *Store) Close() error {
	if s.DB == nil {
		return nil
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
