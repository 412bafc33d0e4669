package database

import (
	"encoding/json"
	"errors"
	"log"

	"timberyard-backend/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Read operations: try the remote, refresh the cache with what it returned,
// and fall back to the cache when the remote is down or failing. The Source
// tells the caller which one answered; nothing here panics or bubbles a
// remote error upward.

func (g *Gateway) Items() ([]models.ProductItem, Source) {
	if db := g.remoteDB(); db != nil {
		var items []models.ProductItem
		if err := db.Order("created_at DESC").Find(&items).Error; err == nil {
			g.mirror("inventory", &models.ProductItem{}, func(tx *gorm.DB) error {
				for i := range items {
					if err := tx.Create(&items[i]).Error; err != nil {
						return err
					}
				}
				return nil
			})
			return items, SourceRemote
		} else {
			log.Printf("remote inventory read failed, using cache: %v", err)
			g.dropRemote()
		}
	}
	var items []models.ProductItem
	if err := g.cache.Order("created_at DESC").Find(&items).Error; err != nil {
		log.Printf("cache inventory read failed: %v", err)
		return nil, SourceNone
	}
	return items, SourceCache
}

func (g *Gateway) Sales() ([]models.Sale, Source) {
	if db := g.remoteDB(); db != nil {
		var sales []models.Sale
		if err := db.Order("sale_date DESC").Find(&sales).Error; err == nil {
			g.mirror("sales", &models.Sale{}, func(tx *gorm.DB) error {
				for i := range sales {
					if err := tx.Create(&sales[i]).Error; err != nil {
						return err
					}
				}
				return nil
			})
			return sales, SourceRemote
		} else {
			log.Printf("remote sales read failed, using cache: %v", err)
			g.dropRemote()
		}
	}
	var sales []models.Sale
	if err := g.cache.Order("sale_date DESC").Find(&sales).Error; err != nil {
		log.Printf("cache sales read failed: %v", err)
		return nil, SourceNone
	}
	return sales, SourceCache
}

func (g *Gateway) Purchases() ([]models.Purchase, Source) {
	if db := g.remoteDB(); db != nil {
		var purchases []models.Purchase
		if err := db.Order("purchase_date DESC").Find(&purchases).Error; err == nil {
			g.mirror("purchases", &models.Purchase{}, func(tx *gorm.DB) error {
				for i := range purchases {
					if err := tx.Create(&purchases[i]).Error; err != nil {
						return err
					}
				}
				return nil
			})
			return purchases, SourceRemote
		} else {
			log.Printf("remote purchases read failed, using cache: %v", err)
			g.dropRemote()
		}
	}
	var purchases []models.Purchase
	if err := g.cache.Order("purchase_date DESC").Find(&purchases).Error; err != nil {
		log.Printf("cache purchases read failed: %v", err)
		return nil, SourceNone
	}
	return purchases, SourceCache
}

func (g *Gateway) Clients() ([]models.Client, Source) {
	if db := g.remoteDB(); db != nil {
		var clients []models.Client
		if err := db.Order("name ASC").Find(&clients).Error; err == nil {
			g.mirror("clients", &models.Client{}, func(tx *gorm.DB) error {
				for i := range clients {
					if err := tx.Create(&clients[i]).Error; err != nil {
						return err
					}
				}
				return nil
			})
			return clients, SourceRemote
		} else {
			log.Printf("remote clients read failed, using cache: %v", err)
			g.dropRemote()
		}
	}
	var clients []models.Client
	if err := g.cache.Order("name ASC").Find(&clients).Error; err != nil {
		log.Printf("cache clients read failed: %v", err)
		return nil, SourceNone
	}
	return clients, SourceCache
}

func (g *Gateway) Employees() ([]models.Employee, Source) {
	if db := g.remoteDB(); db != nil {
		var employees []models.Employee
		if err := db.Order("name ASC").Find(&employees).Error; err == nil {
			g.mirror("employees", &models.Employee{}, func(tx *gorm.DB) error {
				for i := range employees {
					if err := tx.Create(&employees[i]).Error; err != nil {
						return err
					}
				}
				return nil
			})
			return employees, SourceRemote
		} else {
			log.Printf("remote employees read failed, using cache: %v", err)
			g.dropRemote()
		}
	}
	var employees []models.Employee
	if err := g.cache.Order("name ASC").Find(&employees).Error; err != nil {
		log.Printf("cache employees read failed: %v", err)
		return nil, SourceNone
	}
	return employees, SourceCache
}

// mirror replaces one entity's cache rows with a fresh remote snapshot.
func (g *Gateway) mirror(entity string, model any, insert func(tx *gorm.DB) error) {
	err := g.cache.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
		return insert(tx)
	})
	if err != nil {
		log.Printf("cache mirror failed for %s: %v", entity, err)
	}
}

// Write operations. Upserts follow the explicit natural-key contract:
// find by key, then replace or insert. Relying on implicit uniqueness
// lets duplicates accumulate silently when cache and remote drift apart.

// SaveItem upserts by code, the item's natural key.
func (g *Gateway) SaveItem(item models.ProductItem) {
	if item.Id == "" {
		item.Id = uuid.NewString()
	}
	g.writeBoth("inventory", func(db *gorm.DB) error {
		var existing models.ProductItem
		err := db.Where("code = ?", item.Code).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return db.Create(&item).Error
		}
		if err != nil {
			return err
		}
		item.Id = existing.Id
		item.CreatedAt = existing.CreatedAt
		return db.Save(&item).Error
	})
}

// SaveItems persists a whole inventory snapshot, one record per round-trip.
// Sequential on purpose: datasets are small and the upsert stays simple.
func (g *Gateway) SaveItems(items []models.ProductItem) {
	for _, item := range items {
		g.SaveItem(item)
	}
}

func (g *Gateway) DeleteItem(id string) {
	g.writeBoth("inventory", func(db *gorm.DB) error {
		return db.Delete(&models.ProductItem{}, "id = ?", id).Error
	})
}

// AddSale upserts by surrogate id; sale rows have no natural key.
func (g *Gateway) AddSale(sale models.Sale) {
	if sale.Id == "" {
		sale.Id = uuid.NewString()
	}
	g.writeBoth("sales", func(db *gorm.DB) error {
		var existing models.Sale
		err := db.Where("id = ?", sale.Id).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return db.Create(&sale).Error
		}
		if err != nil {
			return err
		}
		return db.Save(&sale).Error
	})
}

func (g *Gateway) SaveSales(sales []models.Sale) {
	for _, sale := range sales {
		g.AddSale(sale)
	}
}

func (g *Gateway) DeleteSale(id string) {
	g.writeBoth("sales", func(db *gorm.DB) error {
		return db.Delete(&models.Sale{}, "id = ?", id).Error
	})
}

func (g *Gateway) AddPurchase(purchase models.Purchase) {
	if purchase.Id == "" {
		purchase.Id = uuid.NewString()
	}
	g.writeBoth("purchases", func(db *gorm.DB) error {
		var existing models.Purchase
		err := db.Where("id = ?", purchase.Id).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return db.Create(&purchase).Error
		}
		if err != nil {
			return err
		}
		return db.Save(&purchase).Error
	})
}

func (g *Gateway) SavePurchases(purchases []models.Purchase) {
	for _, purchase := range purchases {
		g.AddPurchase(purchase)
	}
}

func (g *Gateway) DeletePurchase(id string) {
	g.writeBoth("purchases", func(db *gorm.DB) error {
		return db.Delete(&models.Purchase{}, "id = ?", id).Error
	})
}

// SaveClient upserts by name, the client's natural key.
func (g *Gateway) SaveClient(client models.Client) {
	if client.Id == "" {
		client.Id = uuid.NewString()
	}
	g.writeBoth("clients", func(db *gorm.DB) error {
		var existing models.Client
		err := db.Where("name = ?", client.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return db.Create(&client).Error
		}
		if err != nil {
			return err
		}
		client.Id = existing.Id
		return db.Save(&client).Error
	})
}

func (g *Gateway) SaveClients(clients []models.Client) {
	for _, client := range clients {
		g.SaveClient(client)
	}
}

func (g *Gateway) DeleteClient(id string) {
	g.writeBoth("clients", func(db *gorm.DB) error {
		return db.Delete(&models.Client{}, "id = ?", id).Error
	})
}

// SaveEmployee upserts by name, the employee's natural key.
func (g *Gateway) SaveEmployee(employee models.Employee) {
	if employee.Id == "" {
		employee.Id = uuid.NewString()
	}
	g.writeBoth("employees", func(db *gorm.DB) error {
		var existing models.Employee
		err := db.Where("name = ?", employee.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return db.Create(&employee).Error
		}
		if err != nil {
			return err
		}
		employee.Id = existing.Id
		return db.Save(&employee).Error
	})
}

func (g *Gateway) SaveEmployees(employees []models.Employee) {
	for _, employee := range employees {
		g.SaveEmployee(employee)
	}
}

func (g *Gateway) DeleteEmployee(id string) {
	g.writeBoth("employees", func(db *gorm.DB) error {
		return db.Delete(&models.Employee{}, "id = ?", id).Error
	})
}

// UserByUsername reads an operator account, remote first, cache fallback,
// so login keeps working while the remote is down.
func (g *Gateway) UserByUsername(username string) (models.User, error) {
	var user models.User
	if db := g.remoteDB(); db != nil {
		err := db.Where("username = ?", username).First(&user).Error
		if err == nil {
			return user, nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, err
		}
		log.Printf("remote user read failed, using cache: %v", err)
		g.dropRemote()
	}
	err := g.cache.Where("username = ?", username).First(&user).Error
	return user, err
}

// SaveUser upserts by username.
func (g *Gateway) SaveUser(user models.User) {
	if user.Id == "" {
		user.Id = uuid.NewString()
	}
	g.writeBoth("users", func(db *gorm.DB) error {
		var existing models.User
		err := db.Where("username = ?", user.Username).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return db.Create(&user).Error
		}
		if err != nil {
			return err
		}
		user.Id = existing.Id
		return db.Save(&user).Error
	})
}

// WipeAll irreversibly clears all five entity tables on both stores. Unlike
// the regular writes this reports failure: the administrative reset is the
// one path where the operator must know whether it worked.
func (g *Gateway) WipeAll() error {
	entities := []any{
		&models.Sale{},
		&models.Purchase{},
		&models.Client{},
		&models.Employee{},
		&models.ProductItem{},
	}
	wipe := func(db *gorm.DB) error {
		for _, m := range entities {
			if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	}

	if err := wipe(g.cache); err != nil {
		return err
	}
	if db := g.remoteDB(); db != nil {
		if err := wipe(db); err != nil {
			g.dropRemote()
			return err
		}
	}
	return nil
}

// RecordAudit writes a best-effort audit row for a destructive operation.
func (g *Gateway) RecordAudit(action, entity, entityId, actor string, details any) {
	blob, err := json.Marshal(details)
	if err != nil {
		blob = []byte("{}")
	}
	g.writeBoth("audit", func(db *gorm.DB) error {
		rec := models.AuditLog{
			Action:   action,
			Entity:   entity,
			EntityId: entityId,
			Actor:    actor,
			Details:  datatypes.JSON(blob),
		}
		return db.Create(&rec).Error
	})
}

// AuditLogs lists recent audit rows, newest first.
func (g *Gateway) AuditLogs(limit int) ([]models.AuditLog, Source) {
	if limit <= 0 {
		limit = 100
	}
	if db := g.remoteDB(); db != nil {
		var logs []models.AuditLog
		if err := db.Order("created_at DESC").Limit(limit).Find(&logs).Error; err == nil {
			return logs, SourceRemote
		} else {
			log.Printf("remote audit read failed, using cache: %v", err)
			g.dropRemote()
		}
	}
	var logs []models.AuditLog
	if err := g.cache.Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, SourceNone
	}
	return logs, SourceCache
}
