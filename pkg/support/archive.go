package support

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ArchiveKind is derived from a file name; the two-suffix .tar.gz case is
// checked before the plain .gz one.
type ArchiveKind string

const (
	KindTarGz   ArchiveKind = "tar.gz"
	KindTar     ArchiveKind = "tar"
	KindZip     ArchiveKind = "zip"
	KindGz      ArchiveKind = "gz"
	KindUnknown ArchiveKind = ""
)

func DetectArchiveKind(name string) ArchiveKind {
	switch {
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return KindTarGz
	case strings.HasSuffix(name, ".tar"):
		return KindTar
	case strings.HasSuffix(name, ".zip"):
		return KindZip
	case strings.HasSuffix(name, ".gz"):
		return KindGz
	default:
		return KindUnknown
	}
}

// ExtractArchive unpacks the archive at path into dir.
func ExtractArchive(path, dir string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	switch DetectArchiveKind(filepath.Base(path)) {
	case KindTarGz:
		gz, err := gzip.NewReader(file)
		if err != nil {
			return err
		}
		defer gz.Close()
		return Untar(gz, dir)
	case KindTar:
		return Untar(file, dir)
	case KindZip:
		return Unzip(path, dir)
	case KindGz:
		name := strings.TrimSuffix(filepath.Base(path), ".gz")
		out, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0711) //nolint:mnd
		if err != nil {
			return err
		}
		defer out.Close()
		return Gunzip(file, out)
	default:
		return fmt.Errorf("unsupported archive: %s", filepath.Base(path))
	}
}

// Gunzip decompresses a single gzip stream.
func Gunzip(in io.Reader, out io.Writer) error {
	gz, err := gzip.NewReader(in)
	if err != nil {
		return err
	}
	defer gz.Close()
	_, err = io.Copy(out, gz) // #nosec G110 - archives come from trusted release mirrors
	return err
}

// Untar unpacks a tar stream into dir, flattening nothing; entries that
// would escape dir are rejected.
func Untar(in io.Reader, dir string) error {
	tr := tar.NewReader(in)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		target, err := securePath(dir, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil { //nolint:mnd
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil { //nolint:mnd
				return err
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(header.Mode)) // #nosec G115
			if err != nil {
				return err
			}
			if _, err := io.Copy(out, tr); err != nil { // #nosec G110
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
		}
	}
}

// Unzip unpacks a zip file into dir.
func Unzip(path, dir string) error {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	for _, entry := range reader.File {
		target, err := securePath(dir, entry.Name)
		if err != nil {
			return err
		}
		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil { //nolint:mnd
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil { //nolint:mnd
			return err
		}
		in, err := entry.Open()
		if err != nil {
			return err
		}
		out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, entry.Mode())
		if err != nil {
			in.Close()
			return err
		}
		_, err = io.Copy(out, in) // #nosec G110
		in.Close()
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func securePath(dir, name string) (string, error) {
	target := filepath.Join(dir, filepath.Clean(name))
	if !strings.HasPrefix(target, filepath.Clean(dir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry escapes target dir: %s", name)
	}
	return target, nil
}
