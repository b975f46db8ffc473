package source

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, payload []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)

	f, err := os.Create(path)
	require.NoError(t, err)
	w, err := Compress(name, f)
	require.NoError(t, err)
	_, err = w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}

func TestRouter_FileWithCompression(t *testing.T) {
	payload := bytes.Repeat([]byte("vehicle\x00positions"), 5000)

	for _, name := range []string{"plain.dat", "data.dat.gz", "data.dat.zst", "data.dat.lz4"} {
		path := writeFile(t, name, payload)

		if CompressionFor(name) != CompressionNone {
			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.NotEqual(t, payload, raw, "%s should be stored compressed", name)
		}

		rc, err := NewRouter(nil, nil).Open(context.Background(), path)
		require.NoError(t, err, name)
		got, err := io.ReadAll(rc)
		require.NoError(t, err, name)
		require.NoError(t, rc.Close(), name)
		assert.Equal(t, payload, got, name)
	}
}

func TestRouter_FileURI(t *testing.T) {
	path := writeFile(t, "uri.dat", []byte("abc"))

	rc, err := NewRouter(nil, nil).Open(context.Background(), "file://"+path)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestRouter_MissingFile(t *testing.T) {
	_, err := NewRouter(nil, nil).Open(context.Background(), filepath.Join(t.TempDir(), "nope.dat"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRouter_UnconfiguredScheme(t *testing.T) {
	_, err := NewRouter(nil, nil).Open(context.Background(), "s3://bucket/key.dat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no s3 source configured")
}

type fakeS3 struct {
	objects map[string][]byte
	calls   int
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.calls++
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestS3Source_Open(t *testing.T) {
	var gz bytes.Buffer
	w, err := Compress("x.gz", &gz)
	require.NoError(t, err)
	_, err = w.Write([]byte("compressed payload"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	fake := &fakeS3{objects: map[string][]byte{
		"fleet/2024/positions.dat":    []byte("raw payload"),
		"fleet/2024/positions.dat.gz": gz.Bytes(),
	}}
	router := NewRouter(&S3Source{Client: fake}, nil)

	rc, err := router.Open(context.Background(), "s3://fleet/2024/positions.dat")
	require.NoError(t, err)
	got, _ := io.ReadAll(rc)
	assert.Equal(t, "raw payload", string(got))

	rc, err = router.Open(context.Background(), "s3://fleet/2024/positions.dat.gz")
	require.NoError(t, err)
	got, _ = io.ReadAll(rc)
	assert.Equal(t, "compressed payload", string(got))

	_, err = router.Open(context.Background(), "s3://fleet/missing.dat")
	require.Error(t, err)
	assert.Equal(t, 3, fake.calls)
}

func TestParseObjectURI(t *testing.T) {
	bucket, key, err := parseObjectURI("minio://data/vehicles/positions.dat", "minio")
	require.NoError(t, err)
	assert.Equal(t, "data", bucket)
	assert.Equal(t, "vehicles/positions.dat", key)

	for _, bad := range []string{"minio://data", "minio:///key", "s3://data/key"} {
		_, _, err := parseObjectURI(bad, "minio")
		assert.Error(t, err, bad)
	}
}
