package utils

import (
	"bufio"
	"bytes"
	"errors"

	//#nosec G501 -- md5 is required by the Maven repository layout.
	"crypto/md5"
	//#nosec G505 -- sha1 is required by the Maven repository layout.
	"crypto/sha1"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/minio/sha256-simd"
)

type Algorithm int

const (
	MD5 Algorithm = iota
	SHA1
	SHA256
)

var algorithmFunc = map[Algorithm]func() hash.Hash{
	// Go native crypto algorithms:
	MD5:  md5.New,
	SHA1: sha1.New,
	// sha256-simd algorithm:
	SHA256: sha256.New,
}

var algorithmExtension = map[Algorithm]string{
	MD5:    "md5",
	SHA1:   "sha1",
	SHA256: "sha256",
}

var ErrUnsupportedAlgorithm = errors.New("unsupported checksum algorithm")

// Extension returns the side-file extension used by Maven repositories for the algorithm, e.g. "sha1".
func (a Algorithm) Extension() string {
	return algorithmExtension[a]
}

func (a Algorithm) String() string {
	if ext, ok := algorithmExtension[a]; ok {
		return ext
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// Digest returns the hex encoded digest of content.
func Digest(algorithm Algorithm, content []byte) (string, error) {
	results, err := CalcChecksums(bytes.NewReader(content), algorithm)
	if err != nil {
		return "", err
	}
	return results[algorithm], nil
}

// CalcChecksums calculates all hashes at once using AsyncMultiWriter. The reader is therefore read only once.
func CalcChecksums(reader io.Reader, checksumType ...Algorithm) (map[Algorithm]string, error) {
	hashes, err := getChecksumByAlgorithm(checksumType...)
	if err != nil {
		return nil, err
	}
	pageSize := os.Getpagesize()
	sizedReader := bufio.NewReaderSize(reader, pageSize)
	var hashWriter []io.Writer
	for _, v := range hashes {
		hashWriter = append(hashWriter, v)
	}
	if _, err = io.Copy(AsyncMultiWriter(hashWriter...), sizedReader); err != nil {
		return nil, err
	}
	results := map[Algorithm]string{}
	for k, v := range hashes {
		results[k] = fmt.Sprintf("%x", v.Sum(nil))
	}
	return results, nil
}

func getChecksumByAlgorithm(checksumType ...Algorithm) (map[Algorithm]hash.Hash, error) {
	hashes := map[Algorithm]hash.Hash{}
	if len(checksumType) == 0 {
		for k, v := range algorithmFunc {
			hashes[k] = v()
		}
		return hashes, nil
	}

	for _, v := range checksumType {
		newHash, ok := algorithmFunc[v]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, v)
		}
		hashes[v] = newHash()
	}
	return hashes, nil
}
