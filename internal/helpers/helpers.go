package helpers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/golang-jwt/jwt/v5"
)

const (
	AvatarFolder = "avatars"
	EventsFolder = "events"
)

type CustomClaims struct {
	Role         string                 `json:"role"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	jwt.RegisteredClaims
}

// ValidateToken verifies a JWT against the identity provider's JWKS
// endpoint. The provider itself is external; we only trust its keys.
func ValidateToken(tokenStr string) (*CustomClaims, error) {
	jwksURL := os.Getenv("JWKS_URL")
	if jwksURL == "" {
		return nil, errors.New("JWKS_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx: ctx,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %v", err)
	}
	defer jwks.EndBackground()

	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, jwks.Keyfunc)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	return claims, nil
}

func StringTrim(s string) string {
	return strings.TrimSpace(s)
}

// UploadImage pushes one image (a file path or base64 data URI) to the
// hosting service and returns its secure URL and public id.
func UploadImage(ctx context.Context, cld *cloudinary.Cloudinary, imageData string, folder string) (string, string, error) {
	if cld == nil {
		return "", "", fmt.Errorf("cloudinary client is not initialized")
	}
	if strings.TrimSpace(imageData) == "" {
		return "", "", fmt.Errorf("image data cannot be empty")
	}

	uploadResult, err := cld.Upload.Upload(ctx, imageData, uploader.UploadParams{
		Folder: folder,
		Tags:   []string{"eventpulse"},
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload image: %v", err)
	}

	return uploadResult.SecureURL, uploadResult.PublicID, nil
}

// DeleteImages removes hosted binaries by public id. Photo documents are a
// separate concern; deleting one never implies the other.
func DeleteImages(ctx context.Context, cld *cloudinary.Cloudinary, publicIDs []string) error {
	if cld == nil {
		return fmt.Errorf("cloudinary client is not initialized")
	}

	var failed []string
	for _, publicID := range publicIDs {
		if strings.TrimSpace(publicID) == "" {
			continue
		}
		_, err := cld.Upload.Destroy(ctx, uploader.DestroyParams{
			PublicID: publicID,
		})
		if err != nil {
			failed = append(failed, publicID)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("failed to delete %d image(s): %s", len(failed), strings.Join(failed, ", "))
	}
	return nil
}
