// Package verify summarizes a demo directory as a Merkle root over
// per-file content identifiers, so two runs can be compared with a single
// line of output.
package verify

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cbergoon/merkletree"
	"github.com/multiformats/go-multihash"
)

// Summary describes one verified directory.
type Summary struct {
	Root  string // hex Merkle root over the file CIDs
	Files int
	Bytes int64
}

// fileContent implements merkletree.Content over a file's CID.
type fileContent struct {
	cid string
}

// CalculateHash implements the Content interface.
func (c fileContent) CalculateHash() ([]byte, error) {
	h := sha256.New()
	if _, err := h.Write([]byte(c.cid)); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}

// Equals implements the Content interface.
func (c fileContent) Equals(other merkletree.Content) (bool, error) {
	otherContent, ok := other.(fileContent)
	if !ok {
		return false, fmt.Errorf("type mismatch")
	}
	return c.cid == otherContent.cid, nil
}

// computeCID returns the SHA2-256 multihash of data in base58.
func computeCID(data []byte) (string, error) {
	mh, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return "", fmt.Errorf("compute multihash: %w", err)
	}
	return mh.B58String(), nil
}

// Directory hashes every regular file directly under root (in lexical
// order), builds a Merkle tree over the CIDs, and returns the summary.
func Directory(root string) (*Summary, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", root, err)
	}

	var contents []merkletree.Content
	var total int64

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(root, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}

		cid, err := computeCID(data)
		if err != nil {
			return nil, err
		}

		contents = append(contents, fileContent{cid: cid})
		total += int64(len(data))
	}

	if len(contents) == 0 {
		return nil, fmt.Errorf("no files under %s", root)
	}

	tree, err := merkletree.NewTree(contents)
	if err != nil {
		return nil, fmt.Errorf("build Merkle tree: %w", err)
	}

	return &Summary{
		Root:  hex.EncodeToString(tree.MerkleRoot()),
		Files: len(contents),
		Bytes: total,
	}, nil
}

// Report verifies root and prints a one-line summary to w.
func Report(w io.Writer, root string) error {
	sum, err := Directory(root)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: %d files, %d bytes, merkle root %s\n", root, sum.Files, sum.Bytes, sum.Root)
	return nil
}
