package repo

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func getMigrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "2025_02_20_Initial",
			Migrate: func(db *gorm.DB) error {
				return db.Exec(`create table if not exists conveyancing_transactions
(
    id               text not null
        constraint conveyancing_transactions_pk
            primary key,
    property_address text,
    address          text,
    postcode         text,
    reference        text,
    stage            text,
    agreed_price     decimal,
    buyer_email      text,
    seller_email     text,
    solicitor_email  text,
    agent_email      text,
    buyer_phone      text,
    seller_phone     text,
    solicitor_phone  text,
    agent_phone      text,
    participants     jsonb,
    updated_at       timestamp
);
`).Error
			},
		},
		{
			ID: "2025_02_24_PostcodeIndex",
			Migrate: func(db *gorm.DB) error {
				return db.Exec(`create index if not exists conveyancing_transactions_postcode_idx
    on conveyancing_transactions (postcode);
`).Error
			},
		},
	}
}
