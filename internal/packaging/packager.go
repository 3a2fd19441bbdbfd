package packaging

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yeka/zip"
)

// DeliveryPackage is ephemeral: one encrypted archive plus its access
// password, valid for a single fulfillment attempt.
type DeliveryPackage struct {
	ArchivePath string
	Password    string
}

type Packager interface {
	Package(ctx context.Context, plan string) (*DeliveryPackage, error)
}

type zipPackager struct {
	plansDir  string
	outputDir string
	logger    zerolog.Logger
}

func NewZipPackager(plansDir, outputDir string, logger zerolog.Logger) Packager {
	return &zipPackager{
		plansDir:  plansDir,
		outputDir: outputDir,
		logger:    logger.With().Str("component", "packager").Logger(),
	}
}

func (p *zipPackager) Package(ctx context.Context, plan string) (*DeliveryPackage, error) {
	planDir := filepath.Join(p.plansDir, plan)
	info, err := os.Stat(planDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("plan directory %s: %w", plan, os.ErrNotExist)
	}

	password, err := GeneratePassword()
	if err != nil {
		return nil, fmt.Errorf("generate package password: %w", err)
	}

	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	archivePath := filepath.Join(p.outputDir, fmt.Sprintf("%s-%s.zip", plan, uuid.NewString()))
	if err := p.writeArchive(ctx, planDir, archivePath, password); err != nil {
		os.Remove(archivePath)
		return nil, fmt.Errorf("write archive for plan %s: %w", plan, err)
	}

	p.logger.Debug().Str("plan", plan).Str("archive", archivePath).Msg("plan packaged")

	return &DeliveryPackage{
		ArchivePath: archivePath,
		Password:    password,
	}, nil
}

func (p *zipPackager) writeArchive(ctx context.Context, planDir, archivePath, password string) error {
	out, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	defer zw.Close()

	err = filepath.WalkDir(planDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(planDir, path)
		if err != nil {
			return err
		}

		w, err := zw.Encrypt(filepath.ToSlash(rel), password, zip.AES256Encryption)
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(w, f)
		return err
	})
	if err != nil {
		return err
	}

	return zw.Close()
}
