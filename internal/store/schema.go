package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names shared by the repositories.
const (
	tableUsers      = "users"
	tableProgress   = "progress_entries"
	tableItems      = "store_items"
	tableCoinEvents = "coin_events"
)

var (
	usersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "name", Type: field.TypeString, Unique: true},
		{Name: "coins", Type: field.TypeInt, Default: 0},
		{Name: "created_at", Type: field.TypeTime},
	}
	usersTable = &schema.Table{
		Name:       tableUsers,
		Columns:    usersColumns,
		PrimaryKey: []*schema.Column{usersColumns[0]},
	}

	progressColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "level_id", Type: field.TypeInt},
		{Name: "status", Type: field.TypeString},
		{Name: "updated_at", Type: field.TypeTime},
		{Name: "user_id", Type: field.TypeString},
	}
	progressTable = &schema.Table{
		Name:       tableProgress,
		Columns:    progressColumns,
		PrimaryKey: []*schema.Column{progressColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "progress_entries_users_progress",
				Columns:    []*schema.Column{progressColumns[4]},
				RefColumns: []*schema.Column{usersColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "progressentry_user_id_level_id",
				Unique:  true,
				Columns: []*schema.Column{progressColumns[4], progressColumns[1]},
			},
		},
	}

	itemsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "name", Type: field.TypeString},
		{Name: "description", Type: field.TypeString, Default: ""},
		{Name: "price", Type: field.TypeInt},
		{Name: "icon_type", Type: field.TypeString},
		{Name: "category", Type: field.TypeString},
	}
	itemsTable = &schema.Table{
		Name:       tableItems,
		Columns:    itemsColumns,
		PrimaryKey: []*schema.Column{itemsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "storeitem_category", Columns: []*schema.Column{itemsColumns[5]}},
		},
	}

	coinEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "delta", Type: field.TypeInt},
		{Name: "kind", Type: field.TypeString},
		{Name: "reason", Type: field.TypeString},
		{Name: "item_id", Type: field.TypeString, Nullable: true},
		{Name: "receipt_id", Type: field.TypeString, Nullable: true},
		{Name: "level_id", Type: field.TypeInt, Nullable: true},
		{Name: "user_id", Type: field.TypeString},
	}
	coinEventsTable = &schema.Table{
		Name:       tableCoinEvents,
		Columns:    coinEventsColumns,
		PrimaryKey: []*schema.Column{coinEventsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "coin_events_users_coin_events",
				Columns:    []*schema.Column{coinEventsColumns[9]},
				RefColumns: []*schema.Column{usersColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "coinevent_user_id", Columns: []*schema.Column{coinEventsColumns[9]}},
			{Name: "coinevent_timestamp", Columns: []*schema.Column{coinEventsColumns[2]}},
			{
				// level_id is set only on one-time level rewards.
				Name:    "coinevent_user_id_level_id",
				Unique:  true,
				Columns: []*schema.Column{coinEventsColumns[9], coinEventsColumns[8]},
			},
		},
	}

	tables = []*schema.Table{
		usersTable,
		progressTable,
		itemsTable,
		coinEventsTable,
	}
)

func init() {
	progressTable.ForeignKeys[0].RefTable = usersTable
	coinEventsTable.ForeignKeys[0].RefTable = usersTable
}
