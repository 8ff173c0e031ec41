package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetLogLevel(t *testing.T) {
	SetLogLevel("WARN")
	if Log.GetLevel() != logrus.WarnLevel {
		t.Fatalf("got %s", Log.GetLevel())
	}
	SetLogLevel("debug")
	if Log.GetLevel() != logrus.DebugLevel {
		t.Fatalf("got %s", Log.GetLevel())
	}
	SetLogLevel("info")
}

func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plates.txt")
	if err := os.WriteFile(path, []byte("abc123\n\n  JK563Y \r\nPBX0001"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ReadLines(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"abc123", "JK563Y", "PBX0001"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v", got)
	}

	if _, err := ReadLines(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestStoreLockIsExclusive(t *testing.T) {
	store := filepath.Join(t.TempDir(), "dataset.csv")

	first, err := NewStoreLock(store)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Lock(); err != nil {
		t.Fatal(err)
	}
	if first.Path() != store+".lock" {
		t.Fatalf("lock path %s", first.Path())
	}

	second, err := NewStoreLock(store)
	if err != nil {
		t.Fatal(err)
	}
	if ok, err := second.TryLock(); err != nil || ok {
		t.Fatalf("second lock acquired while first held (ok=%v err=%v)", ok, err)
	}

	if err := first.Unlock(); err != nil {
		t.Fatal(err)
	}
	if ok, err := second.TryLock(); err != nil || !ok {
		t.Fatalf("second lock not acquired after release (ok=%v err=%v)", ok, err)
	}
	second.Unlock()
}
