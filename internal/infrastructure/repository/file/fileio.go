package file

import (
	"io"
	"os"
	"path/filepath"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// encodeJSON renders v with two-space indentation and a trailing newline.
func encodeJSON(v any) (*bytebufferpool.ByteBuffer, error) {
	raw, err := sonic.ConfigDefault.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, crerr.Wrap(err, "encode json")
	}

	buf := bytebufferpool.Get()
	_, _ = buf.Write(raw)
	_ = buf.WriteByte('\n')
	return buf, nil
}

func decodeJSON(path string, target any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrapf(err, "decode %s", path)
	}
	return nil
}

// stageFile writes data to a hidden temp file next to dst and fsyncs it. The
// caller either renames it into place or removes it.
func stageFile(dst string, data []byte) (string, error) {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", crerr.Wrapf(err, "create dir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return "", crerr.Wrapf(err, "create temp file in %s", dir)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", crerr.Wrapf(err, "write %s", tmpPath)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", crerr.Wrapf(err, "sync %s", tmpPath)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", crerr.Wrapf(err, "close %s", tmpPath)
	}
	if err := os.Chmod(tmpPath, filePerm); err != nil {
		_ = os.Remove(tmpPath)
		return "", crerr.Wrapf(err, "chmod %s", tmpPath)
	}
	return tmpPath, nil
}

func commitFile(tmpPath, dst string) error {
	if err := os.Rename(tmpPath, dst); err != nil {
		_ = os.Remove(tmpPath)
		return crerr.Wrapf(err, "rename %s to %s", tmpPath, dst)
	}
	return nil
}

func writeFileAtomic(dst string, data []byte) error {
	tmpPath, err := stageFile(dst, data)
	if err != nil {
		return err
	}
	return commitFile(tmpPath, dst)
}

// preserveFile makes dst hold the current content of src, preferring a hard
// link and falling back to a byte copy.
func preserveFile(src, dst string) error {
	if err := os.Link(src, dst); err == nil {
		return nil
	}
	return copyFile(src, dst)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return crerr.Wrapf(err, "open %s", src)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return crerr.Wrapf(err, "create %s", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return crerr.Wrapf(err, "copy %s to %s", src, dst)
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return crerr.Wrapf(err, "sync %s", dst)
	}
	return out.Close()
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
