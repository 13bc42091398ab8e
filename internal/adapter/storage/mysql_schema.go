package storage

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS Users (
		userID INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(50) NOT NULL UNIQUE,
		password VARCHAR(50) NOT NULL,
		latitude DOUBLE NOT NULL,
		longitude DOUBLE NOT NULL,
		type CHAR(8) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS Store (
		storeID INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		latitude DOUBLE NOT NULL,
		longitude DOUBLE NOT NULL,
		managerID INT NOT NULL,
		FOREIGN KEY (managerID) REFERENCES Users(userID)
	)`,
	`CREATE TABLE IF NOT EXISTS Product (
		storeID INT NOT NULL,
		productName VARCHAR(30) NOT NULL,
		numberOfUnits INT NOT NULL,
		pricePerUnit DECIMAL(10,2) NOT NULL,
		PRIMARY KEY (storeID, productName),
		FOREIGN KEY (storeID) REFERENCES Store(storeID)
	)`,
	`CREATE TABLE IF NOT EXISTS Warehouse (
		WarehouseID INT AUTO_INCREMENT PRIMARY KEY,
		area DOUBLE NOT NULL,
		latitude DOUBLE NOT NULL,
		longitude DOUBLE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS Orders (
		orderNumber INT AUTO_INCREMENT PRIMARY KEY,
		customerID INT NOT NULL,
		storeID INT NOT NULL,
		productName VARCHAR(30) NOT NULL,
		unitsOrdered INT NOT NULL,
		orderTime DATETIME(6) NOT NULL,
		FOREIGN KEY (customerID) REFERENCES Users(userID),
		FOREIGN KEY (storeID, productName) REFERENCES Product(storeID, productName)
	)`,
	`CREATE TABLE IF NOT EXISTS ProductSupplyRequests (
		requestNumber INT AUTO_INCREMENT PRIMARY KEY,
		managerID INT NOT NULL,
		warehouseID INT NOT NULL,
		storeID INT NOT NULL,
		productName VARCHAR(30) NOT NULL,
		unitsRequested INT NOT NULL,
		FOREIGN KEY (managerID) REFERENCES Users(userID),
		FOREIGN KEY (warehouseID) REFERENCES Warehouse(WarehouseID),
		FOREIGN KEY (storeID, productName) REFERENCES Product(storeID, productName)
	)`,
	`CREATE TABLE IF NOT EXISTS ProductUpdates (
		updateNumber INT AUTO_INCREMENT PRIMARY KEY,
		managerID INT NOT NULL,
		storeID INT NOT NULL,
		productName VARCHAR(30) NOT NULL,
		updatedOn DATETIME(6) NOT NULL,
		FOREIGN KEY (managerID) REFERENCES Users(userID),
		FOREIGN KEY (storeID, productName) REFERENCES Product(storeID, productName)
	)`,
}

// Migrate creates any missing tables.
func (m *MySQLAdapter) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}
