package filesystem

import (
	"io"
	"os"
	"path/filepath"

	"github.com/freakmaxi/kertish-serve/basics/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Manager interface is the file store collaborator of the serving node.
// Every name is resolved under the base directory
type Manager interface {
	BaseDirectory() string

	Exists(name string) bool
	File(name string) (*common.File, error)
	Size(name string) (int64, error)
	Open(name string) (io.ReadCloser, error)
}

type manager struct {
	basePath string
	logger   *zap.Logger
}

// NewManager creates the file store rooted at basePath. The folder is created when it is missing
func NewManager(basePath string, logger *zap.Logger) (Manager, error) {
	absolutePath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, errors.Wrap(err, "unable to resolve base directory")
	}

	m := &manager{
		basePath: absolutePath,
		logger:   logger,
	}

	if err := m.prepare(); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *manager) prepare() error {
	info, err := os.Stat(m.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			m.logger.Warn("Base directory does not exist, creating", zap.String("baseDirectory", m.basePath))
			return errors.Wrap(os.MkdirAll(m.basePath, 0777), "unable to create base directory")
		}
		return errors.Wrap(err, "unable to access base directory")
	}
	if !info.IsDir() {
		return errors.Errorf("%s is not a directory", m.basePath)
	}
	return nil
}

func (m *manager) resolve(name string) (string, error) {
	if !common.ValidateName(name) {
		return "", os.ErrInvalid
	}
	return filepath.Join(m.basePath, filepath.FromSlash(common.CorrectPath(name))), nil
}

func (m *manager) stat(name string) (os.FileInfo, error) {
	p, err := m.resolve(name)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, errors.Wrapf(err, "unable to stat %s", name)
	}
	if info.IsDir() {
		return nil, os.ErrNotExist
	}
	return info, nil
}

func (m *manager) BaseDirectory() string {
	return m.basePath
}

func (m *manager) Exists(name string) bool {
	_, err := m.stat(name)
	return err == nil
}

func (m *manager) File(name string) (*common.File, error) {
	info, err := m.stat(name)
	if err != nil {
		return nil, err
	}
	_, filename := common.Split(name)

	return common.NewFile(filename, info.Size(), info.ModTime()), nil
}

func (m *manager) Size(name string) (int64, error) {
	info, err := m.stat(name)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (m *manager) Open(name string) (io.ReadCloser, error) {
	p, err := m.resolve(name)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, errors.Wrapf(err, "unable to open %s", name)
	}
	return file, nil
}

var _ Manager = &manager{}
