package output

import (
	"os"
	"path/filepath"
)

// Layout is the results directory structure:
//
//	results/
//	  description/   <Object>.json describe snapshots
//	  data/          <Object>.csv generated rows
//	  bulk_result/   bulk import result files
type Layout struct {
	Root string
}

func NewLayout(root string) *Layout {
	return &Layout{Root: root}
}

func (l *Layout) DescriptionDir() string { return filepath.Join(l.Root, "description") }
func (l *Layout) DataDir() string        { return filepath.Join(l.Root, "data") }
func (l *Layout) BulkResultDir() string  { return filepath.Join(l.Root, "bulk_result") }

func (l *Layout) DescribePath(object string) string {
	return filepath.Join(l.DescriptionDir(), object+".json")
}

func (l *Layout) DataPath(object string) string {
	return filepath.Join(l.DataDir(), object+".csv")
}

func (l *Layout) Init() error {
	for _, dir := range []string{l.DescriptionDir(), l.DataDir(), l.BulkResultDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
