package scope

import "gorm.io/gorm"

// ForActor returns a GORM scope restricting rows to the actor's own
// customer id. Staff and admin actors see every row.
func ForActor(actor Actor) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if actor.IsStaff() {
			return db
		}
		return db.Where("customer_id = ?", actor.CustomerID)
	}
}
