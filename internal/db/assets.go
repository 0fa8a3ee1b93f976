package db

import (
	"log"

	"poddock/internal/models"
)

const (
	AssetTypeAudio = "audio"
	AssetTypeImage = "image"
)

func GetAssetByID(id string) (*models.Asset, error) {
	asset := &models.Asset{}
	err := DB.Get(asset, "SELECT * FROM assets WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	return asset, nil
}

func CreateAsset(a *models.Asset) (*models.Asset, error) {
	created := &models.Asset{}
	err := DB.Get(created, `
		INSERT INTO assets (
			id, type, storage_provider, storage_bucket, storage_key,
			public_url, content_type, byte_size, checksum, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING *`,
		a.ID, a.Type, a.StorageProvider, a.StorageBucket, a.StorageKey,
		a.PublicURL, a.ContentType, a.ByteSize, a.Checksum, a.CreatedAt)
	if err != nil {
		log.Printf("Error creating asset: %v", err)
		return nil, err
	}
	return created, nil
}

func SetAssetChecksum(id, checksum string) error {
	_, err := DB.Exec("UPDATE assets SET checksum = $1 WHERE id = $2", checksum, id)
	return err
}

func DeleteAsset(id string) error {
	_, err := DB.Exec("DELETE FROM assets WHERE id = $1", id)
	return err
}
