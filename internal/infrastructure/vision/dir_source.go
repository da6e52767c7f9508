package vision

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/disintegration/gift"

	"laser-trainer/internal/domain/entity"
	"laser-trainer/internal/domain/port"
)

// DirSource проигрывает кадры из каталога с изображениями (png, jpeg) по имени файла.
// Нужен для отладки без камеры и для повторного прогона записанной серии.
type DirSource struct {
	files  []string
	next   int
	mirror *gift.GIFT
	seq    uint64
}

// NewDirSource читает список кадров каталога
func NewDirSource(dir string, mirror bool) (*DirSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read frames dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	s := &DirSource{files: files}
	if mirror {
		s.mirror = gift.New(gift.FlipHorizontal())
	}
	return s, nil
}

// Len возвращает количество кадров
func (s *DirSource) Len() int {
	return len(s.files)
}

// Next декодирует следующий кадр. После последнего возвращает ErrEndOfStream.
func (s *DirSource) Next(ctx context.Context) (entity.Frame, error) {
	if err := ctx.Err(); err != nil {
		return entity.Frame{}, err
	}
	if s.next >= len(s.files) {
		return entity.Frame{}, port.ErrEndOfStream
	}
	path := s.files[s.next]
	s.next++

	img, err := decodeFile(path)
	if err != nil {
		return entity.Frame{}, fmt.Errorf("%w: %v", port.ErrEndOfStream, err)
	}
	if s.mirror != nil {
		dst := image.NewRGBA(s.mirror.Bounds(img.Bounds()))
		s.mirror.Draw(dst, img)
		img = dst
	}
	s.seq++
	return entity.Frame{Image: img, CapturedAt: time.Now(), Sequence: s.seq}, nil
}

// Close ничего не держит открытым
func (s *DirSource) Close() error {
	return nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// Проверка реализации интерфейса
var _ port.FrameSource = (*DirSource)(nil)
