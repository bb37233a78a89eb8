package main

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path"
	"strings"

	"github.com/edsrzf/mmap-go"
	"github.com/mithro/ai-shenanigans-for-bmcs/parser"
	"github.com/pkg/errors"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

var (
	zip_member_flag = app.Flag(
		"zip_member", "The member to use when the input is a zip archive.",
	).Default("image.bin").String()
)

// mapFile returns the content of fd. Vendor updates are shipped as
// zip archives holding image.bin - those are unpacked into memory,
// everything else is mapped read only.
func mapFile(fd *os.File) ([]byte, func(), error) {
	st, err := fd.Stat()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "stat %v", fd.Name())
	}

	if strings.HasSuffix(strings.ToLower(fd.Name()), ".zip") {
		data, err := readZipMember(fd, st.Size(), *zip_member_flag)
		return data, func() {}, err
	}

	// mmap refuses empty files.
	if st.Size() == 0 {
		return []byte{}, func() {}, nil
	}

	mapped, err := mmap.Map(fd, mmap.RDONLY, 0)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "mmap %v", fd.Name())
	}

	return mapped, func() { mapped.Unmap() }, nil
}

func readZipMember(reader io.ReaderAt, size int64, member string) ([]byte, error) {
	archive, err := zip.NewReader(reader, size)
	if err != nil {
		return nil, errors.Wrap(err, "zip")
	}

	for _, file := range archive.File {
		if path.Base(file.Name) != member {
			continue
		}

		fd, err := file.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "zip member %v", file.Name)
		}
		defer fd.Close()

		parser.DebugPrint("Using %v from zip archive\n", file.Name)
		return io.ReadAll(fd)
	}

	return nil, errors.Errorf("zip archive has no member %v", member)
}

// getContainer carves the container at offset out of the file.
func getContainer(fd *os.File, offset int64) []byte {
	data, closer, err := mapFile(fd)
	kingpin.FatalIfError(err, "Can not read %v", fd.Name())
	defer closer()

	container, err := parser.ReadContainer(bytes.NewReader(data), offset)
	kingpin.FatalIfError(err, "Can not read container")

	return container
}

func getImage(fd *os.File, offset int64, options parser.Options) *parser.Image {
	image, err := parser.LoadImage(getContainer(fd, offset), options)
	kingpin.FatalIfError(err, "Can not load image")

	return image
}
