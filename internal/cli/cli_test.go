package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/f3rmion/reshare/internal/sharefile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secretHex = "000000000000000000000000000000000000000000000000000000000000002a"

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	t.Log(errOut.String())
	return strings.TrimSpace(out.String()), err
}

func TestDealReconstructVerify(t *testing.T) {
	for _, grp := range []string{"secp256k1", "bjj"} {
		t.Run(grp, func(t *testing.T) {
			dir := t.TempDir()
			shares := filepath.Join(dir, "shares.yaml")

			commit, err := run(t, "", "deal", "--group", grp, "-t", "2", "-n", "4",
				"--secret", secretHex, "--out", shares)
			require.NoError(t, err)
			assert.NotEmpty(t, commit)

			got, err := run(t, "", "reconstruct", "--group", grp, "--in", shares)
			require.NoError(t, err)
			assert.Equal(t, secretHex, got)

			got, err = run(t, "", "reconstruct", "--group", grp, "--in", shares, "--use", "3,1")
			require.NoError(t, err)
			assert.Equal(t, secretHex, got)

			out, err := run(t, "", "verify", "--group", grp, "--in", shares)
			require.NoError(t, err)
			assert.Equal(t, 4, strings.Count(out, ": ok"))
		})
	}
}

func TestReconstructShare(t *testing.T) {
	dir := t.TempDir()
	shares := filepath.Join(dir, "shares.yaml")
	_, err := run(t, "", "deal", "-t", "3", "-n", "5", "--seed", "reconstruct", "--out", shares)
	require.NoError(t, err)

	f, err := sharefile.Load(shares)
	require.NoError(t, err)

	got, err := run(t, "", "reconstruct", "--in", shares, "--use", "0,2,4", "--index", "3")
	require.NoError(t, err)
	assert.Equal(t, f.Shares[3].Value, got)
}

func TestDealPromptFromPipe(t *testing.T) {
	shares := filepath.Join(t.TempDir(), "shares.yaml")
	_, err := run(t, secretHex+"\n", "deal", "--prompt", "--out", shares)
	require.NoError(t, err)

	got, err := run(t, "", "reconstruct", "--in", shares)
	require.NoError(t, err)
	assert.Equal(t, secretHex, got)
}

func TestDealSeedIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.yaml"), filepath.Join(dir, "b.yaml")
	_, err := run(t, "", "deal", "--seed", "fixed", "--out", a)
	require.NoError(t, err)
	_, err = run(t, "", "deal", "--seed", "fixed", "--out", b)
	require.NoError(t, err)

	fa, err := sharefile.Load(a)
	require.NoError(t, err)
	fb, err := sharefile.Load(b)
	require.NoError(t, err)
	assert.Equal(t, fa, fb)
}

func TestRecover(t *testing.T) {
	dir := t.TempDir()
	shares := filepath.Join(dir, "shares.yaml")
	repaired := filepath.Join(dir, "repaired.yaml")

	_, err := run(t, "", "deal", "-t", "2", "-n", "3", "--secret", secretHex, "--out", shares)
	require.NoError(t, err)
	orig, err := sharefile.Load(shares)
	require.NoError(t, err)

	got, err := run(t, "", "recover", "--in", shares, "--lost", "0", "--out", repaired)
	require.NoError(t, err)
	assert.Equal(t, orig.Shares[0].Value, got)

	f, err := sharefile.Load(repaired)
	require.NoError(t, err)
	assert.Equal(t, orig, f)

	_, err = run(t, "", "verify", "--in", repaired)
	require.NoError(t, err)
}

func TestRecoverErrors(t *testing.T) {
	dir := t.TempDir()
	shares := filepath.Join(dir, "shares.yaml")
	_, err := run(t, "", "deal", "-t", "2", "-n", "3", "--out", shares)
	require.NoError(t, err)

	_, err = run(t, "", "recover", "--in", shares, "--lost", "3", "--out", filepath.Join(dir, "x.yaml"))
	assert.Error(t, err)

	_, err = run(t, "", "recover", "--in", shares, "--lost", "1", "--contributors", "1",
		"--out", filepath.Join(dir, "x.yaml"))
	assert.Error(t, err, "lost participant cannot contribute")

	_, err = run(t, "", "recover", "--in", shares, "--lost", "1", "--contributors", "0,0",
		"--out", filepath.Join(dir, "x.yaml"))
	assert.Error(t, err)
}

func TestRefresh(t *testing.T) {
	dir := t.TempDir()
	shares := filepath.Join(dir, "shares.yaml")
	fresh := filepath.Join(dir, "fresh.yaml")

	_, err := run(t, "", "deal", "--group", "bjj", "-t", "3", "-n", "5", "--secret", secretHex, "--out", shares)
	require.NoError(t, err)
	_, err = run(t, "", "refresh", "--in", shares, "--out", fresh)
	require.NoError(t, err)

	before, err := sharefile.Load(shares)
	require.NoError(t, err)
	after, err := sharefile.Load(fresh)
	require.NoError(t, err)
	assert.Equal(t, before.Commitments[0], after.Commitments[0])
	for i := range before.Shares {
		assert.NotEqual(t, before.Shares[i].Value, after.Shares[i].Value)
	}

	got, err := run(t, "", "reconstruct", "--in", fresh, "--use", "4,2,0")
	require.NoError(t, err)
	assert.Equal(t, secretHex, got)

	_, err = run(t, "", "verify", "--in", fresh)
	require.NoError(t, err)
}

func TestVerifyRejectsTamperedShare(t *testing.T) {
	dir := t.TempDir()
	shares := filepath.Join(dir, "shares.yaml")
	_, err := run(t, "", "deal", "--out", shares)
	require.NoError(t, err)

	f, err := sharefile.Load(shares)
	require.NoError(t, err)
	f.Shares[1].Value = f.Shares[0].Value
	require.NoError(t, f.Save(shares))

	_, err = run(t, "", "verify", "--in", shares)
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "reshare.yaml")
	shares := filepath.Join(dir, "shares.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("group: bjj\nthreshold: 3\nparticipants: 4\n"), 0o600))

	_, err := run(t, "", "deal", "--config", cfg, "--out", shares)
	require.NoError(t, err)

	got, err := sharefile.Load(shares)
	require.NoError(t, err)
	assert.Equal(t, "bjj", got.Group)
	assert.Equal(t, 3, got.Threshold)
	assert.Len(t, got.Shares, 4)
}

func TestSharingSettingsOnlyCheckedByDeal(t *testing.T) {
	dir := t.TempDir()
	shares := filepath.Join(dir, "shares.yaml")
	_, err := run(t, "", "deal", "-t", "2", "-n", "3", "--out", shares)
	require.NoError(t, err)

	t.Setenv("RESHARE_THRESHOLD", "4")

	_, err = run(t, "", "verify", "--in", shares)
	require.NoError(t, err)
	_, err = run(t, "", "reconstruct", "--in", shares)
	require.NoError(t, err)

	_, err = run(t, "", "deal", "--out", filepath.Join(dir, "bad.yaml"))
	assert.ErrorContains(t, err, "threshold")
}

func TestReconstructRejectsNegativeIndex(t *testing.T) {
	shares := filepath.Join(t.TempDir(), "shares.yaml")
	_, err := run(t, "", "deal", "--out", shares)
	require.NoError(t, err)

	_, err = run(t, "", "reconstruct", "--in", shares, "--index", "-7")
	assert.ErrorContains(t, err, "--index -7")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "reshare dev", out)
}
