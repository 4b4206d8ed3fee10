package service

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendordesk/internal/model"
)

func TestScenario_RegisterLoginAndTeamListing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	profile, err := env.auth.Register(ctx, "alice@x.com", "pw", "Alice")
	require.NoError(t, err)
	assert.Equal(t, model.RoleViewer, profile.Role)

	res, err := env.auth.Login(ctx, "alice@x.com", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "Alice", res.User.Name)

	claims, err := env.auth.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, claims.UserID)
	assert.Equal(t, model.RoleViewer, claims.Role)

	team, err := env.team.List(ctx)
	require.NoError(t, err)
	require.Len(t, team, 1)
	assert.Equal(t, "Alice", team[0].Name)
	assert.Equal(t, "alice@x.com", team[0].Email)
	assert.Nil(t, team[0].Title)
	assert.Nil(t, team[0].Department)
	assert.Nil(t, team[0].Phone)
}

func TestScenario_ContactResolutionSurvivesMemberDeletion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, aliceMember := env.register(t, "alice@x.com", "Alice")

	v, err := env.vendors.Create(ctx, VendorInput{Name: strPtr("Acme"), PrimaryContactID: idPtr(aliceMember)})
	require.NoError(t, err)

	got, err := env.vendors.Get(ctx, v.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PrimaryContactName)
	assert.Equal(t, "Alice", *got.PrimaryContactName)
	assert.Equal(t, "alice@x.com", *got.PrimaryContactEmail)
	assert.Nil(t, got.SecondaryContactName)
	assert.NotNil(t, got.Documents)

	require.NoError(t, env.team.Delete(ctx, aliceMember))

	list, err := env.vendors.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].PrimaryContactName)
	assert.Nil(t, list[0].PrimaryContactEmail)
	require.NotNil(t, list[0].PrimaryContactID)
	assert.Equal(t, aliceMember, *list[0].PrimaryContactID)
}

func TestScenario_LoginFailuresAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "bob@x.com", "Bob")

	_, wrongPassword := env.auth.Login(ctx, "bob@x.com", "nope")
	_, unknownEmail := env.auth.Login(ctx, "nobody@x.com", "nope")
	_, wrongCase := env.auth.Login(ctx, "BOB@x.com", "pw-Bob")

	assertKind(t, wrongPassword, ErrInvalidCredentials, MsgInvalidCredentials)
	assertKind(t, unknownEmail, ErrInvalidCredentials, MsgInvalidCredentials)
	assertKind(t, wrongCase, ErrInvalidCredentials, MsgInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestScenario_DuplicateRegistrationLeavesNoStrayMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "carol@x.com", "Carol")

	_, err := env.auth.Register(ctx, "carol@x.com", "other", "Carol Two")
	assertKind(t, err, ErrConflict, MsgEmailInUse)

	users, err := env.store.Users().List(ctx)
	require.NoError(t, err)
	members, err := env.store.TeamMembers().List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Len(t, members, 1)
}

func TestScenario_VendorFalsySkipVersusTeamOverwrite(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, member := env.register(t, "dave@x.com", "Dave")

	v, err := env.vendors.Create(ctx, VendorInput{
		Name:         strPtr("Globex"),
		Product:      strPtr("Routers"),
		Notes:        strPtr("24/7 line"),
		SupportLevel: strPtr("premium"),
	})
	require.NoError(t, err)

	require.NoError(t, env.vendors.Update(ctx, v.ID, VendorInput{Product: strPtr(""), Notes: nil, AccountRep: strPtr("Eve")}))
	got, err := env.vendors.Get(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Routers", *got.Product)
	assert.Equal(t, "24/7 line", *got.Notes)
	assert.Equal(t, "Eve", *got.AccountRep)
	assert.Equal(t, model.SupportPremium, got.SupportLevel)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))

	require.NoError(t, env.team.Update(ctx, member, TeamMemberInput{Title: strPtr("Engineer"), Phone: strPtr("555")}))
	require.NoError(t, env.team.Update(ctx, member, TeamMemberInput{Title: strPtr("Lead")}))
	m, err := env.team.Get(ctx, member)
	require.NoError(t, err)
	assert.Equal(t, "Lead", *m.Title)
	assert.Nil(t, m.Phone)
	assert.Nil(t, m.Department)
}

func TestScenario_VendorNamesAreUnique(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, err := env.vendors.Create(ctx, VendorInput{Name: strPtr("Acme")})
	require.NoError(t, err)
	b, err := env.vendors.Create(ctx, VendorInput{Name: strPtr("Initech")})
	require.NoError(t, err)
	assert.Equal(t, a.ID+1, b.ID)
	assert.Equal(t, model.SupportStandard, a.SupportLevel)

	_, err = env.vendors.Create(ctx, VendorInput{Name: strPtr("Acme")})
	assertKind(t, err, ErrConflict, MsgVendorExists)

	err = env.vendors.Update(ctx, b.ID, VendorInput{Name: strPtr("Acme")})
	assertKind(t, err, ErrConflict, MsgVendorExists)

	// renaming to its own name is a no-op, not a conflict
	assert.NoError(t, env.vendors.Update(ctx, a.ID, VendorInput{Name: strPtr("Acme")}))
}

func TestScenario_DocumentLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID, _ := env.register(t, "frank@x.com", "Frank")
	v, err := env.vendors.Create(ctx, VendorInput{Name: strPtr("Acme")})
	require.NoError(t, err)

	content := "%PDF-1.4\nsupport contract\n"
	doc, err := env.documents.Upload(ctx, UploadInput{
		VendorID:   v.ID,
		Title:      "Contract",
		FileName:   "contract.pdf",
		Size:       int64(len(content)),
		Body:       strings.NewReader(content),
		UploaderID: userID,
	})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", doc.FileType)
	assert.Equal(t, int64(len(content)), doc.FileSize)
	assert.FileExists(t, filepath.Join(env.uploadDir, doc.FilePath))

	docs, err := env.documents.ListByVendor(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Frank", docs[0].UploadedBy)

	detail, err := env.vendors.Get(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, detail.Documents, 1)
	assert.Equal(t, doc.ID, detail.Documents[0].ID)

	dl, err := env.documents.Download(ctx, doc.ID)
	require.NoError(t, err)
	body, err := io.ReadAll(dl.Body)
	require.NoError(t, dl.Body.Close())
	require.NoError(t, err)
	assert.Equal(t, content, string(body))
	assert.Equal(t, "contract.pdf", dl.Document.FileName)

	require.NoError(t, env.documents.Delete(ctx, doc.ID))
	assert.NoFileExists(t, filepath.Join(env.uploadDir, doc.FilePath))

	_, err = env.documents.Download(ctx, doc.ID)
	assertKind(t, err, ErrNotFound, MsgDocumentNotFound)

	err = env.documents.Delete(ctx, doc.ID)
	assertKind(t, err, ErrNotFound, MsgDocumentNotFound)
}

func TestScenario_UploadForMissingVendorLeavesNoFile(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.documents.Upload(context.Background(), UploadInput{
		VendorID: 42,
		Title:    "Orphan",
		FileName: "orphan.txt",
		Size:     5,
		Body:     bytes.NewReader([]byte("hello")),
	})
	assertKind(t, err, ErrNotFound, MsgVendorNotFound)

	entries, err := os.ReadDir(env.uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestScenario_DownloadWithMissingFile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	v, err := env.vendors.Create(ctx, VendorInput{Name: strPtr("Acme")})
	require.NoError(t, err)

	doc, err := env.documents.Upload(ctx, UploadInput{
		VendorID:    v.ID,
		Title:       "Notes",
		FileName:    "notes.txt",
		ContentType: "text/plain",
		Size:        2,
		Body:        strings.NewReader("hi"),
	})
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(env.uploadDir, doc.FilePath)))

	_, err = env.documents.Download(ctx, doc.ID)
	assertKind(t, err, ErrNotFound, MsgFileNotFound)

	// the record can still be cleaned up
	assert.NoError(t, env.documents.Delete(ctx, doc.ID))
}

func TestScenario_VendorDeleteKeepsDocuments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	v, err := env.vendors.Create(ctx, VendorInput{Name: strPtr("Acme")})
	require.NoError(t, err)

	content := "escalation matrix"
	doc, err := env.documents.Upload(ctx, UploadInput{
		VendorID:    v.ID,
		Title:       "Escalation",
		FileName:    "escalation.txt",
		ContentType: "text/plain",
		Size:        int64(len(content)),
		Body:        strings.NewReader(content),
	})
	require.NoError(t, err)

	require.NoError(t, env.vendors.Delete(ctx, v.ID))

	_, err = env.vendors.Get(ctx, v.ID)
	assertKind(t, err, ErrNotFound, MsgVendorNotFound)

	// documents are not cascaded; they stay listed under the old vendor id
	docs, err := env.documents.ListByVendor(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, doc.ID, docs[0].ID)
	assert.FileExists(t, filepath.Join(env.uploadDir, doc.FilePath))

	dl, err := env.documents.Download(ctx, doc.ID)
	require.NoError(t, err)
	body, err := io.ReadAll(dl.Body)
	require.NoError(t, dl.Body.Close())
	require.NoError(t, err)
	assert.Equal(t, content, string(body))
}
